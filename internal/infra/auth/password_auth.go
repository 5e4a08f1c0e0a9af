package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/redis_repo"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNoSession          = errors.New("no active session")
	ErrWeakPassword       = errors.New("password must have at least 6 characters")
)

const minPasswordLen = 6

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, token string) (*model.Session, error)
	Touch(ctx context.Context, token string, ttl time.Duration) (time.Time, error)
	Delete(ctx context.Context, token string) error
}

// PasswordAuthenticator email + 密碼登入，密碼以bcrypt儲存
type PasswordAuthenticator struct {
	users    UserStore
	sessions SessionStore
	ttl      time.Duration
}

func NewPasswordAuthenticator(users UserStore, sessions SessionStore, ttl time.Duration) *PasswordAuthenticator {
	if users == nil || sessions == nil {
		panic("password authenticator stores can't be nil")
	}
	return &PasswordAuthenticator{users: users, sessions: sessions, ttl: ttl}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *PasswordAuthenticator) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidCredentials)
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	_, err := a.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{Email: email, PasswordHash: string(hash)}
	if err := a.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn 成功時建立新session
func (a *PasswordAuthenticator) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	user, err := a.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := &model.Session{
		Token:     uuid.New().String(),
		UserID:    user.UserID,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(a.ttl),
	}
	if err := a.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SignOut session不存在也不回錯
func (a *PasswordAuthenticator) SignOut(ctx context.Context, token string) error {
	return a.sessions.Delete(ctx, token)
}

// ObserveSession 驗證token並延長session
// 錯誤:
//   - ErrNoSession: token不存在或已過期
func (a *PasswordAuthenticator) ObserveSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	session, err := a.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, redis_repo.ErrSessionNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	expiresAt, err := a.sessions.Touch(ctx, token, a.ttl)
	if err != nil {
		if errors.Is(err, redis_repo.ErrSessionNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	session.ExpiresAt = expiresAt
	return session, nil
}
