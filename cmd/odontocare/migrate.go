package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
	"github.com/odontocare/odontocare/internal/core/service"
	"github.com/odontocare/odontocare/internal/infrastructure/db/mysql"
	"github.com/odontocare/odontocare/pkg/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the MySQL schema (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := bootstrap(ctx, "migrate")
			if err != nil {
				return err
			}
			log := logger.Get()

			db, err := openMySQL(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := mysql.Migrate(ctx, db); err != nil {
				return err
			}
			log.Info().Str("database", cfg.MySQL.Database).Msg("schema up to date")
			return nil
		},
	}
}

func seedAdminCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the first admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := bootstrap(ctx, "seed")
			if err != nil {
				return err
			}
			log := logger.Get()

			db, err := openMySQL(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			users := service.NewUserService(mysql.NewUserRepository(db), log)
			u, err := users.CreateUser(ctx, ports.CreateUserInput{
				Username: username,
				Password: password,
				Role:     domain.RoleAdmin,
			})
			if errors.Is(err, domain.ErrUserExists) {
				log.Info().Str("username", username).Msg("admin already exists, nothing to do")
				return nil
			}
			if err != nil {
				return err
			}
			log.Info().Int64("id_usuario", u.ID).Str("username", u.Username).Msg("admin created")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "admin", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
