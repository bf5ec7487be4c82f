package main

import (
	"errors"
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thrivecorp/platform/internal/repository"
	"github.com/thrivecorp/platform/internal/service"
	"github.com/thrivecorp/platform/pkg/config"
	"github.com/thrivecorp/platform/pkg/database"
	"github.com/thrivecorp/platform/pkg/jwtutil"
	"github.com/thrivecorp/platform/pkg/logger"
)

const (
	emailFlag     = "email"
	passwordFlag  = "password"
	firstNameFlag = "first-name"
	lastNameFlag  = "last-name"
)

var adminFlags = map[string]cobraflags.Flag{
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Usage: "Email of the new platform administrator (required)",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Usage: "Initial password, at least 8 characters (required)",
	},
	firstNameFlag: &cobraflags.StringFlag{
		Name:  firstNameFlag,
		Value: "Admin",
		Usage: "First name of the administrator",
	},
	lastNameFlag: &cobraflags.StringFlag{
		Name:  lastNameFlag,
		Value: "ThriveCorp",
		Usage: "Last name of the administrator",
	},
}

// newCreateAdminCommand bootstraps the first thrivecorp_admin account. Admins
// cannot self-register through the API.
func newCreateAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an active platform administrator",
		RunE:  createAdmin,
	}
	cobraflags.RegisterMap(cmd, adminFlags)
	return cmd
}

func createAdmin(cmd *cobra.Command, _ []string) error {
	in := service.AccountInput{
		Email:     adminFlags[emailFlag].GetString(),
		Password:  adminFlags[passwordFlag].GetString(),
		FirstName: adminFlags[firstNameFlag].GetString(),
		LastName:  adminFlags[lastNameFlag].GetString(),
	}
	if in.Email == "" || in.Password == "" {
		return errors.New("--email and --password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.InitLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	db, err := database.InitDB(&cfg.DB, log)
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	svc := service.New(repository.NewPostgres(db), jwtutil.NewJWTUtil(&cfg.JWT))
	admin, err := svc.Auth.CreateAdmin(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Info("Administrator created", zap.Uint("user_id", admin.ID), zap.String("email", admin.Email))
	return nil
}
