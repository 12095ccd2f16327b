package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/bizops-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/bizops-backend-go/internal/service/file"
	invoiceService "github.com/cmlabs-hris/bizops-backend-go/internal/service/invoice"
	"github.com/spf13/cobra"
)

func newRemindOverdueCmd(load ConfigLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "remind-overdue",
		Short: "Email clients of every overdue invoice once",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
				MaxConns: cfg.Database.MaxConns,
				MinConns: cfg.Database.MinConns,
			})
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			fileStorage, err := storage.New(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			emailService, err := email.NewEmailService(cfg.SMTP)
			if err != nil {
				return err
			}
			loc, err := time.LoadLocation(cfg.Attendance.DefaultTimezone)
			if err != nil {
				return err
			}

			svc := invoiceService.NewInvoiceService(
				postgresql.NewTransactor(db),
				postgresql.NewInvoiceRepository(db),
				postgresql.NewCompanyRepository(db),
				postgresql.NewUserRepository(db),
				postgresql.NewProjectRepository(db),
				postgresql.NewSequenceGenerator(db),
				file.NewFileService(fileStorage),
				emailService,
				cfg.Invoice,
				loc,
			)

			sent, err := svc.SendOverdueReminders(ctx)
			if err != nil {
				return err
			}
			slog.Info("Overdue reminders sent", "count", sent)
			fmt.Fprintf(cmd.OutOrStdout(), "%d reminder(s) sent\n", sent)
			return nil
		},
	}
}
