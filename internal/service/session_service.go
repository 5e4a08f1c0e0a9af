package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/infra/auth"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Authenticator interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	SignIn(ctx context.Context, email, password string) (*model.Session, error)
	SignOut(ctx context.Context, token string) error
	ObserveSession(ctx context.Context, token string) (*model.Session, error)
}

type ISessionService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	// SignIn 登入並建立收銀台
	//
	// 參數:
	//   - email, password: 收銀員帳密
	//
	// 返回值:
	//   - *model.Session: 新的session，token 用於後續請求
	//
	// 錯誤:
	//   - ErrUnauthenticated: 帳密錯誤
	//   - ErrPersistenceUnavailable: 載入商品或銷售失敗
	SignIn(ctx context.Context, email, password string) (*model.Session, error)
	SignOut(ctx context.Context, token string) error
	// Resolve 依token取得收銀台
	// 服務重啟後session仍有效時，重新建立收銀台
	//
	// 錯誤:
	//   - ErrUnauthenticated: 沒有有效session
	Resolve(ctx context.Context, token string) (*Terminal, error)
}

type SessionService struct {
	auth     Authenticator
	registry *TerminalRegistry
	loader   *TerminalLoader
	logger   *zerolog.Logger
}

func NewSessionService(a Authenticator, registry *TerminalRegistry, loader *TerminalLoader, logger *zerolog.Logger) *SessionService {
	if a == nil || registry == nil || loader == nil {
		panic("session service dependency is nil")
	}
	if logger == nil {
		logger = &log.Logger
	}
	return &SessionService{auth: a, registry: registry, loader: loader, logger: logger}
}

func translateAuthErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNoSession):
		return fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	case errors.Is(err, auth.ErrEmailTaken):
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case errors.Is(err, auth.ErrWeakPassword):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	default:
		return translateStoreErr(err)
	}
}

func (s *SessionService) Register(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.auth.Register(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		return nil, translateAuthErr(err)
	}
	return user, nil
}

func (s *SessionService) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	session, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, translateAuthErr(err)
	}

	identity := model.Identity{UserID: session.UserID, Email: session.Email}
	t, err := s.loader.Load(ctx, session.Token, identity)
	if err != nil {
		if signOutErr := s.auth.SignOut(ctx, session.Token); signOutErr != nil {
			s.logger.Warn().Err(signOutErr).Msg("failed to discard session after load failure")
		}
		return nil, err
	}
	s.registry.AddIfAbsent(t)
	s.logger.Info().Uint("user_id", identity.UserID).Msg("terminal opened")
	return session, nil
}

// SignOut 收銀台狀態一併移除，購物車暫存保留
// 先刪session再移除收銀台，之後的 Resolve 不會再重建
func (s *SessionService) SignOut(ctx context.Context, token string) error {
	err := s.auth.SignOut(ctx, token)
	s.registry.Remove(token)
	return translateAuthErr(err)
}

func (s *SessionService) Resolve(ctx context.Context, token string) (*Terminal, error) {
	session, err := s.auth.ObserveSession(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrNoSession) {
			s.registry.Remove(token)
		}
		return nil, translateAuthErr(err)
	}

	if t, ok := s.registry.Get(token); ok {
		return t, nil
	}

	t, err := s.loader.Load(ctx, token, model.Identity{UserID: session.UserID, Email: session.Email})
	if err != nil {
		return nil, err
	}
	return s.registry.AddIfAbsent(t), nil
}
