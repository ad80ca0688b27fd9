package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/petclinic-auth/internal/auth/domain"
	authService "github.com/allisson/petclinic-auth/internal/auth/service"
	authUseCase "github.com/allisson/petclinic-auth/internal/auth/usecase"
	"github.com/allisson/petclinic-auth/internal/database"
	appValidation "github.com/allisson/petclinic-auth/internal/validation"
)

// CreateUserInput holds the fields for the create-user command.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  string
}

// Validate checks the bootstrap input before touching the database.
func (i CreateUserInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, appValidation.Email),
		validation.Field(&i.Password, validation.Required, appValidation.PasswordStrength{
			MinLength:     12,
			RequireUpper:  true,
			RequireLower:  true,
			RequireNumber: true,
		}),
		validation.Field(&i.Name, validation.Required, appValidation.NotBlank),
	)
}

// RunCreateUser creates an active owner account and its owner profile.
// Exists so a fresh deployment can mint its first credentials without going
// through a registration surface. Outputs the generated ids in either text or
// JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userRepository authUseCase.UserRepository,
	txManager database.TxManager,
	passwordService authService.PasswordService,
	logger *slog.Logger,
	writer io.Writer,
	input CreateUserInput,
	format string,
) error {
	logger.Info("creating new user", slog.String("email", input.Email))

	if err := input.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	passwordHash, err := passwordService.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &authDomain.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: passwordHash,
		Status:       authDomain.AccountStatusActive,
		Type:         authDomain.AccountTypeOwner,
		CreatedAt:    now,
	}
	owner := &authDomain.Owner{
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: now,
	}

	// The user and its owner profile are created together or not at all.
	err = txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := userRepository.Create(ctx, user); err != nil {
			return err
		}
		owner.UserID = user.ID
		return userRepository.CreateOwner(ctx, owner)
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCreateUserJSON(writer, user, owner)
	} else {
		outputCreateUserText(writer, user, owner)
	}

	logger.Info("user created successfully",
		slog.Int64("user_id", user.ID),
		slog.Int64("owner_id", owner.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// outputCreateUserText outputs the result in human-readable text format.
func outputCreateUserText(writer io.Writer, user *authDomain.User, owner *authDomain.Owner) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %d\n", user.ID)
	_, _ = fmt.Fprintf(writer, "Owner ID: %d\n", owner.ID)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
}

// outputCreateUserJSON outputs the result in JSON format for machine consumption.
func outputCreateUserJSON(writer io.Writer, user *authDomain.User, owner *authDomain.Owner) {
	result := map[string]interface{}{
		"user_id":  user.ID,
		"owner_id": owner.ID,
		"email":    user.Email,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
