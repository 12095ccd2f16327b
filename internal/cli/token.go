package cli

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/spf13/cobra"
)

func newTokenCmd(load ConfigLoader) *cobra.Command {
	var (
		userID     string
		email      string
		companyID  string
		employeeID string
		role       string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs validator.ValidationErrors
			if !validator.IsValidUUID(userID) {
				errs.Add("user", "must be a valid UUID")
			}
			if !validator.IsValidUUID(companyID) {
				errs.Add("company", "must be a valid UUID")
			}
			if employeeID != "" && !validator.IsValidUUID(employeeID) {
				errs.Add("employee", "must be a valid UUID")
			}
			r := user.Role(role)
			if r != user.RoleOwner && r != user.RoleManager && r != user.RoleEmployee {
				errs.Add("role", "must be one of owner, manager, employee")
			}
			if err := errs.Err(); err != nil {
				return err
			}

			cfg, err := load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			jwtService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
			if err != nil {
				return err
			}

			var empID *string
			if employeeID != "" {
				empID = &employeeID
			}
			token, expiresAt, err := jwtService.GenerateAccessToken(userID, email, empID, &companyID, r)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, token)
			fmt.Fprintf(out, "expires %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&companyID, "company", "", "company ID")
	cmd.Flags().StringVar(&employeeID, "employee", "", "linked employee ID")
	cmd.Flags().StringVar(&role, "role", string(user.RoleManager), "owner, manager or employee")
	return cmd
}
