package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dkoval/barbershop-booking/internal/api/handlers"
	"github.com/dkoval/barbershop-booking/internal/domain"
	"github.com/dkoval/barbershop-booking/pkg/authtoken"
)

const (
	msgMissingToken = "требуется токен авторизации"
	msgInvalidToken = "невалидный токен авторизации"
	msgAdminOnly    = "требуются права администратора"
)

type claimsContextKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth middleware проверяет Bearer токен и кладет claims в контекст запроса
type Auth struct {
	secret []byte
	logger Logger
}

// NewAuth создает новый Auth middleware
func NewAuth(secret []byte, logger Logger) *Auth {
	return &Auth{secret: secret, logger: logger}
}

// Require возвращает middleware, требующий валидный токен
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// RequireAdmin возвращает middleware, требующий валидный токен с ролью admin
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.authenticate(w, r)
		if !ok {
			return
		}
		if claims.Role != string(domain.RoleAdmin) {
			a.logger.Warn("auth: user id=%d role=%s attempted admin route %s", claims.UserID, claims.Role, r.URL.Path)
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func (a *Auth) authenticate(w http.ResponseWriter, r *http.Request) (*authtoken.Claims, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		handlers.RespondUnauthorized(w, msgMissingToken)
		return nil, false
	}

	tokenStr, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		handlers.RespondUnauthorized(w, msgInvalidToken)
		return nil, false
	}

	claims, err := authtoken.Parse(a.secret, tokenStr)
	if err != nil {
		a.logger.Warn("auth: token validation failed for %s: %v", r.URL.Path, err)
		handlers.RespondUnauthorized(w, msgInvalidToken)
		return nil, false
	}

	return claims, true
}

func withClaims(ctx context.Context, claims *authtoken.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// GetClaims извлекает claims из контекста запроса
// Возвращает nil, если запрос не проходил через Auth middleware
func GetClaims(ctx context.Context) *authtoken.Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*authtoken.Claims)
	return claims
}
