// Command seed creates an account with an explicitly hashed password.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/examhub/exam-service/internal/auth"
	"github.com/examhub/exam-service/internal/config"
	"github.com/examhub/exam-service/internal/domain"
	"github.com/examhub/exam-service/internal/observability"
	"github.com/examhub/exam-service/internal/persistence"
	"github.com/examhub/exam-service/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	email := pflag.String("email", "", "account email (required)")
	password := pflag.String("password", "", "plaintext password, hashed before storage (required)")
	roleFlag := pflag.String("role", string(domain.RoleStudent), "ADMIN, TEACHER or STUDENT")
	cost := pflag.Int("bcrypt-cost", 12, "bcrypt cost factor")
	pflag.Parse()

	if *email == "" || *password == "" {
		pflag.Usage()
		return fmt.Errorf("--email and --password are required")
	}
	role, err := domain.ParseRole(*roleFlag)
	if err != nil {
		return err
	}

	pgCfg, err := config.LoadPostgres()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if pgCfg.DSN == "" {
		return fmt.Errorf("POSTGRES_DSN is not set")
	}

	logger, err := observability.NewLogger(config.LoggerConfig{Level: "warn"})
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, pgCfg, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	hash, err := auth.HashPassword(*password, *cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        *email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := repository.NewUserRepository(pg.PoolHandle()).Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("created %s %s (%s)\n", user.Role, user.Email, user.ID)
	return nil
}
