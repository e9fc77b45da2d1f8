package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// VisitorHeader заголовок с токеном анонимного посетителя
const VisitorHeader = "X-Visitor-ID"

var (
	// ErrInvalidToken подпись, срок действия или claims токена не прошли проверку
	ErrInvalidToken = errors.New("middleware: invalid bearer token")

	// ErrInvalidVisitorID токен посетителя неверной длины
	ErrInvalidVisitorID = errors.New("middleware: invalid visitor id")
)

// Identity кто выполняет запрос
type Identity struct {
	Subject domain.Subject
	Role    string
}

// IsAdmin true для токена с ролью администратора
func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

// Claims токена, выпущенного внешним сервисом авторизации
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type identityKey struct{}

// WithIdentity кладет identity в контекст
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext identity запроса; false - запрос анонимный и без токена посетителя
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

// Authenticate определяет identity запроса
// Bearer токен (HS256, claims sub и role) -> зарегистрированный пользователь,
// иначе заголовок X-Visitor-ID -> анонимный посетитель, иначе запрос без identity.
// Неверный токен отклоняется сразу, а не трактуется как анонимный запрос
func Authenticate(secret []byte, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if header := r.Header.Get("Authorization"); header != "" {
				claims, err := ParseToken(secret, header)
				if err != nil {
					logger.Warn("Authenticate: %s %s - %v", r.Method, r.URL.Path, err)
					writeError(w, http.StatusUnauthorized, "недействительный токен авторизации")
					return
				}
				identity := Identity{Subject: domain.Subject{UserID: claims.Subject}, Role: claims.Role}
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
				return
			}

			if visitorID := strings.TrimSpace(r.Header.Get(VisitorHeader)); visitorID != "" {
				if len(visitorID) < domain.MinVisitorIDLength || len(visitorID) > domain.MaxVisitorIDLength {
					logger.Warn("Authenticate: %s %s - %v", r.Method, r.URL.Path, ErrInvalidVisitorID)
					writeError(w, http.StatusBadRequest, "некорректный токен посетителя")
					return
				}
				identity := Identity{Subject: domain.Subject{VisitorID: visitorID}}
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ParseToken проверяет заголовок "Bearer <jwt>"
func ParseToken(secret []byte, header string) (*Claims, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.Role == "" {
		claims.Role = domain.RoleUser
	}

	return claims, nil
}

// RequireAdmin пропускает только администратора
func RequireAdmin(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok || identity.Subject.UserID == "" {
				writeError(w, http.StatusUnauthorized, "требуется авторизация")
				return
			}
			if !identity.IsAdmin() {
				logger.Warn("RequireAdmin: user=%q denied %s %s", identity.Subject.UserID, r.Method, r.URL.Path)
				writeError(w, http.StatusForbidden, "доступ только для администратора")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
