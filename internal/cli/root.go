// Package cli holds the bizctl operator commands.
package cli

import (
	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
	"github.com/spf13/cobra"
)

// ConfigLoader is called lazily so commands that need no environment still run.
type ConfigLoader func() (*config.Config, error)

func NewRootCmd(load ConfigLoader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bizctl",
		Short: "Operator tooling for the bizops backend",
		Long: `bizctl seeds credentials, mints access tokens for support work and
runs the overdue invoice reminders outside the API scheduler.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newHashPasswordCmd())
	rootCmd.AddCommand(newTokenCmd(load))
	rootCmd.AddCommand(newRemindOverdueCmd(load))
	return rootCmd
}
