package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/handler/http/response"
)

// RequireManager lets managers and owners through.
func RequireManager(next http.Handler) http.Handler {
	return requireActor(next, user.Actor.RequireManager)
}

// RequirePermission lets through actors whose role grants permission.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return requireActor(next, func(a user.Actor) error {
			return a.RequirePermission(permission)
		})
	}
}

func requireActor(next http.Handler, check func(user.Actor) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := ActorFromContext(r.Context())
		if err == nil {
			err = check(actor)
		}
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
