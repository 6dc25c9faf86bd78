package middleware

import (
	"context"
	"net/http"

	"github.com/2beens/gyminsights/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const APIKeyHeader = "X-Insights-Key"

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type apiKeyChecker interface {
	IsAuthorized(ctx context.Context, apiKey string) (bool, error)
}

type AuthMiddlewareHandler struct {
	checker      apiKeyChecker
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(checker apiKeyChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		checker: checker,
		allowedPaths: map[string]bool{
			"/":        true,
			"/version": true,
			"/health":  true,
		},
	}
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			apiKey := r.Header.Get(APIKeyHeader)
			if apiKey == "" {
				log.Tracef("[missing api key] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-api-key")
				return
			}

			authorized, err := h.checker.IsAuthorized(ctx, apiKey)
			if err != nil {
				log.Errorf("[failed api key check] => %s: %s", r.URL.Path, err)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "api-key-check-err")
				span.RecordError(err)
				return
			}
			if !authorized {
				log.Tracef("[invalid api key] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-api-key")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
