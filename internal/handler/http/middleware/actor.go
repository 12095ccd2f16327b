package middleware

import (
	"context"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// ActorFromContext builds the caller from verified token claims.
func ActorFromContext(ctx context.Context) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Actor{}, auth.ErrInvalidToken
	}

	actor := user.Actor{
		UserID:    stringClaim(claims, "user_id"),
		CompanyID: stringClaim(claims, "company_id"),
		Role:      user.Role(stringClaim(claims, "role")),
	}
	if employeeID := stringClaim(claims, "employee_id"); employeeID != "" {
		actor.EmployeeID = &employeeID
	}

	if err := actor.Validate(); err != nil {
		return user.Actor{}, err
	}
	return actor, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	value, _ := claims[key].(string)
	return value
}
