// Command createuser seeds a login user into the users table.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"invoice-dashboard-backend/internal/config"
	"invoice-dashboard-backend/internal/logger"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/services/auth"
	"invoice-dashboard-backend/internal/services/validation"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	userName     string
	userEmail    string
	userPassword string
	bcryptCost   int
)

var rootCmd = &cobra.Command{
	Use:   "createuser",
	Short: "Create a dashboard login user",
	Long: `Createuser hashes the given password with bcrypt and inserts a row into
the users table. Database settings come from .env, config.toml and INVOICES_*
environment variables, the same as the server.

Example:
  createuser --name "User" --email user@nextmail.com --password 123456`,
	RunE: runCreateUser,
}

func init() {
	rootCmd.Flags().StringVar(&userName, "name", "", "display name")
	rootCmd.Flags().StringVar(&userEmail, "email", "", "login email (required)")
	rootCmd.Flags().StringVar(&userPassword, "password", "", "login password, at least 6 characters (required)")
	rootCmd.Flags().IntVar(&bcryptCost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	_ = rootCmd.MarkFlagRequired("email")
	_ = rootCmd.MarkFlagRequired("password")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	creds, errs := validation.New().Credentials(map[string][]string{
		"email":    {userEmail},
		"password": {userPassword},
	})
	if errs != nil {
		var msgs []string
		for field, m := range errs {
			msgs = append(msgs, field+": "+strings.Join(m, " "))
		}
		return fmt.Errorf("invalid user: %s", strings.Join(msgs, "; "))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	zl := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	defer func() { _ = zl.Sync() }()

	db, err := config.InitDB(cfg.Database, zl)
	if err != nil {
		return err
	}
	defer closeDB(db)

	hash, err := auth.HashPassword(creds.Password, bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Name:     userName,
		Email:    creds.Email,
		Password: hash,
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	if err := repository.NewUserRepository(db).Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("Created user: %s (%s)\n", user.Email, user.ID)
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
