package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/pos/internal/api/response"
	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/service"
)

type TerminalResolver interface {
	Resolve(ctx context.Context, token string) (*service.Terminal, error)
}

type authErrKey struct{}

// 從header取出bearer token
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(constants.AuthorizationHeaderKey)
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", service.ErrUnauthenticated)
	}
	fields := strings.Fields(header)
	if len(fields) != 2 || strings.ToLower(fields[0]) != constants.AuthorizationTypeBearer {
		return "", fmt.Errorf("%w: invalid authorization header format", service.ErrUnauthenticated)
	}
	return fields[1], nil
}

// AuthPayloadMiddleware 有token就解析出收銀台放進ctx
// 解析失敗不擋request，錯誤留給 AuthMiddleware 回應
func AuthPayloadMiddleware(resolver TerminalResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, err := bearerToken(r)
			if err == nil {
				var t *service.Terminal
				t, err = resolver.Resolve(ctx, token)
				if err == nil {
					ctx = service.WithTerminal(ctx, t)
					ctx = context.WithValue(ctx, constants.AuthorizationIdentity, t.Identity())
					ctx = context.WithValue(ctx, constants.AuthorizationToken, token)
				}
			}
			if err != nil {
				ctx = context.WithValue(ctx, authErrKey{}, err)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthMiddleware 需要登入的路由
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := service.TerminalFromContext(r.Context()); err != nil {
			if cause, ok := r.Context().Value(authErrKey{}).(error); ok {
				err = cause
			}
			response.ErrorJSON(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetIdentity(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(constants.AuthorizationIdentity).(model.Identity)
	return identity, ok
}

func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(constants.AuthorizationToken).(string)
	return token
}
