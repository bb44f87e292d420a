package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/martin7tsang/student-management-system/models"
)

const (
	// CookieName carries the signed session token. HTTP-only; the browser is
	// the only intended client.
	CookieName = "auth_token"

	SessionTTL   = 12 * time.Hour
	userCacheTTL = 10 * time.Minute
)

var ErrInvalidToken = errors.New("invalid session token")

type Claims struct {
	jwt.RegisteredClaims
}

// Service owns credential verification and session token lifecycle.
// rdb may be nil; user lookups then always hit the database.
type Service struct {
	db     *gorm.DB
	rdb    *redis.Client
	secret []byte
}

func NewService(db *gorm.DB, rdb *redis.Client, secret string) *Service {
	return &Service{db: db, rdb: rdb, secret: []byte(secret)}
}

// VerifyCredentials looks the user up by username and compares the password
// against the stored bcrypt hash. A missing user and a wrong password are
// indistinguishable to the caller.
func (s *Service) VerifyCredentials(username, password string) (*models.User, bool) {
	var u models.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, false
	}
	return &u, true
}

// IssueToken signs a session token for the user.
func (s *Service) IssueToken(u *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", u.ID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString(s.secret)
}

// ParseToken validates the token and returns the user id it was issued for.
func (s *Service) ParseToken(tok string) (uint, error) {
	token, err := jwt.ParseWithClaims(tok, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return 0, ErrInvalidToken
	}
	var id uint
	if _, err := fmt.Sscanf(claims.Subject, "%d", &id); err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func userCacheKey(id uint) string { return fmt.Sprintf("user:%d:data", id) }

// ResolveUser loads the session's user, serving from the Redis cache when
// one is configured and falling back to the database on a miss.
func (s *Service) ResolveUser(ctx context.Context, id uint) (*models.User, error) {
	if s.rdb != nil {
		data, err := s.rdb.Get(ctx, userCacheKey(id)).Result()
		if err == nil {
			var cu cachedUser
			if json.Unmarshal([]byte(data), &cu) == nil {
				return &models.User{ID: cu.ID, Username: cu.Username, IsAdmin: cu.IsAdmin}, nil
			}
		} else if err != redis.Nil {
			slog.Warn("redis user lookup failed", "user_id", id, "error", err)
		}
	}

	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, err
	}

	if s.rdb != nil {
		data, err := json.Marshal(cachedUser{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin})
		if err == nil {
			if err := s.rdb.Set(ctx, userCacheKey(u.ID), data, userCacheTTL).Err(); err != nil {
				slog.Warn("redis user cache write failed", "user_id", u.ID, "error", err)
			}
		}
	}
	return &u, nil
}

// ForgetUser drops the cached user entry, called on logout.
func (s *Service) ForgetUser(ctx context.Context, id uint) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, userCacheKey(id)).Err(); err != nil {
		slog.Warn("redis user cache delete failed", "user_id", id, "error", err)
	}
}
