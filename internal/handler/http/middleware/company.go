package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/bizops-backend-go/internal/handler/http/response"
)

// RequireCompany rejects tokens that are not scoped to a company. Every
// business route is company-scoped.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := ActorFromContext(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
