package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/stemsi/schoolcrm-backend/internal/config"
	"github.com/stemsi/schoolcrm-backend/internal/database"
	"github.com/stemsi/schoolcrm-backend/internal/logger"
	"github.com/stemsi/schoolcrm-backend/internal/model"
	"github.com/stemsi/schoolcrm-backend/internal/repository"
	"github.com/stemsi/schoolcrm-backend/internal/service"
	"github.com/stemsi/schoolcrm-backend/internal/validator"
	"golang.org/x/term"
)

// Admin accounts cannot be created through the API; this is the only way in.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	users := repository.NewUserRepository(pool)
	hasher, err := service.NewPasswordHasher(cfg.PasswordStorage, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid PASSWORD_STORAGE")
	}

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if !validator.ValidEmail(email) {
		fmt.Println("Error: Please add a valid email")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	stored, err := hasher.Hash(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	admin := &model.User{
		Name:     name,
		Email:    email,
		Password: stored,
		Role:     model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			fmt.Println("Error: Email already exists")
			return
		}
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %s\n", admin.Name, admin.Email, admin.ID)
}
