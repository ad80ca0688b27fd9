package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	authUseCase "github.com/allisson/petclinic-auth/internal/auth/usecase"
)

// RunCleanExpiredTokens deletes refresh tokens whose expiry passed more than
// the specified number of days ago. Revoked tokens inside the window are kept
// so the rotation audit trail survives; only long-expired rows age out.
// Supports dry-run mode to preview the deletion count and both text/JSON
// output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredTokens(
	ctx context.Context,
	refreshTokenRepository authUseCase.RefreshTokenRepository,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	// Validate days parameter
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning expired refresh tokens",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	cutoff := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	var count int64
	var err error
	if dryRun {
		count, err = refreshTokenRepository.CountExpiredBefore(ctx, cutoff)
	} else {
		count, err = refreshTokenRepository.DeleteExpiredBefore(ctx, cutoff)
	}
	if err != nil {
		return fmt.Errorf("failed to cleanup expired refresh tokens: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCleanExpiredJSON(writer, count, days, dryRun)
	} else {
		outputCleanExpiredText(writer, count, days, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanExpiredText outputs the result in human-readable text format.
func outputCleanExpiredText(writer io.Writer, count int64, days int, dryRun bool) {
	if dryRun {
		_, _ = fmt.Fprintf(writer, "Dry-run mode: Would delete %d expired token(s) older than %d day(s)\n", count, days)
	} else {
		_, _ = fmt.Fprintf(writer, "Successfully deleted %d expired token(s) older than %d day(s)\n", count, days)
	}
}

// outputCleanExpiredJSON outputs the result in JSON format for machine consumption.
func outputCleanExpiredJSON(writer io.Writer, count int64, days int, dryRun bool) {
	result := map[string]interface{}{
		"count":   count,
		"days":    days,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
