package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/core/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
	"github.com/hossamSharif/shop_ledger/internal/repositories/database/pgsql"
	"github.com/hossamSharif/shop_ledger/pkg/database"
	"github.com/spf13/cobra"
)

// withServices runs fn against a service container backed by a fresh pool.
func withServices(cmd *cobra.Command, fn func(svc *portssvc.ServiceContainer, logger *slog.Logger) error) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	dbPool, err := database.NewPgxPool(cmd.Context(), cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)

	return fn(services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool)), logger)
}

func newContinuityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "continuity <shopID>",
		Short: "Check that each closed year's closing stock matches the next year's opening stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(svc *portssvc.ServiceContainer, logger *slog.Logger) error {
				report, err := svc.FinancialYear.CheckContinuity(cmd.Context(), args[0], services.SystemUserID)
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
				if !report.IsValid {
					logger.Warn("Stock continuity broken", slog.String("shop_id", args[0]), slog.Int("discrepancies", len(report.Discrepancies)))
					return fmt.Errorf("%d stock discrepancies in shop %s", len(report.Discrepancies), args[0])
				}
				return nil
			})
		},
	}
}

func newCreateAdminCommand() *cobra.Command {
	var req dto.CreateUserRequest
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Role = domain.RoleAdmin
			if req.Email == "" || len(req.Password) < 8 {
				return fmt.Errorf("--email and a --password of at least 8 characters are required")
			}
			return withServices(cmd, func(svc *portssvc.ServiceContainer, logger *slog.Logger) error {
				user, err := svc.User.CreateUser(cmd.Context(), req, services.SystemUserID)
				if err != nil {
					return err
				}
				logger.Info("Admin created", slog.String("user_id", user.UserID), slog.String("email", user.Email))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "login email")
	cmd.Flags().StringVar(&req.Password, "password", "", "login password")
	return cmd
}
