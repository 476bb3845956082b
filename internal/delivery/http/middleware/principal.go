package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Pesokrava/market_ledger/internal/delivery/http/response"
	"github.com/Pesokrava/market_ledger/internal/domain"
)

// PrincipalHeader carries the caller identity authenticated by the fronting host
const PrincipalHeader = "X-Principal"

type principalKey struct{}

// Principal stores the X-Principal header in the request context.
// Writes without a principal are rejected with 401.
func Principal() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := domain.Principal(strings.TrimSpace(r.Header.Get(PrincipalHeader)))
			if caller == "" {
				if isWrite(r.Method) {
					response.JSON(w, http.StatusUnauthorized, domain.ErrNotAuthorized)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// WithCaller returns a context carrying caller
func WithCaller(ctx context.Context, caller domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, caller)
}

// CallerFrom returns the principal stored by the Principal middleware
func CallerFrom(ctx context.Context) domain.Principal {
	caller, _ := ctx.Value(principalKey{}).(domain.Principal)
	return caller
}

func isWrite(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}
