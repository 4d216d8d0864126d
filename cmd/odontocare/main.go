// @title                       OdontoCare API
// @version                     1.0
// @description                 Gestión (users, doctors, patients, centers) and citas (appointments) services.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odontocare/odontocare/internal/infrastructure/config"
	"github.com/odontocare/odontocare/internal/infrastructure/db/mysql"
	"github.com/odontocare/odontocare/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "odontocare",
		Short:         "OdontoCare dental clinic services",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedAdminCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and initialises the process logger, which
// subcommands then fetch with logger.Get.
func bootstrap(ctx context.Context, service string) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: service,
	})
	return cfg, nil
}

func openMySQL(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	return mysql.Connect(ctx, mysql.Config{
		User:     cfg.MySQL.User,
		Password: cfg.MySQL.Password,
		Host:     cfg.MySQL.Host,
		Port:     cfg.MySQL.Port,
		Database: cfg.MySQL.Database,
	})
}
