package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/martin7tsang/student-management-system/auth"
	"github.com/martin7tsang/student-management-system/handlers"
	"github.com/martin7tsang/student-management-system/middlewares"
	"github.com/martin7tsang/student-management-system/store"
)

// Register wires all HTTP routes. Everything except /login and /health sits
// behind the session guard.
func Register(e *echo.Echo, st *store.Store, authSvc *auth.Service) {
	authH := handlers.NewAuthHandler(authSvc)
	dash := handlers.NewDashboardHandler(st)
	std := handlers.NewStudentHandler(st)
	crs := handlers.NewCourseHandler(st)
	grd := handlers.NewGradeHandler(st)

	// ===== Public =====
	e.GET("/login", authH.ShowLogin)
	e.POST("/login", authH.Login)
	e.GET("/health", handlers.Health)

	// ===== Protected =====
	guard := middlewares.RequireAuth(authSvc)
	app := e.Group("", guard)

	app.GET("/", dash.Index)
	app.GET("/logout", authH.Logout)

	app.GET("/students", std.List)
	app.GET("/students/add", std.AddForm)
	app.POST("/students/add", std.Add)
	app.GET("/students/edit/:id", std.EditForm)
	app.POST("/students/edit/:id", std.Edit)
	app.GET("/students/delete/:id", std.Delete)
	app.GET("/students/:id/grades", std.Grades)

	app.GET("/courses", crs.List)
	app.GET("/courses/add", crs.AddForm)
	app.POST("/courses/add", crs.Add)
	app.GET("/courses/edit/:id", crs.EditForm)
	app.POST("/courses/edit/:id", crs.Edit)
	app.GET("/courses/delete/:id", crs.Delete)

	app.GET("/grades", grd.List)
	app.GET("/grades/add", grd.AddForm)
	app.POST("/grades/add", grd.Add)
	app.GET("/grades/edit/:id", grd.EditForm)
	app.POST("/grades/edit/:id", grd.Edit)
	app.GET("/grades/delete/:id", grd.Delete)
}
