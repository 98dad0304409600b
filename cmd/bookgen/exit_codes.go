package main

import (
	"errors"
	"os"

	deliverance "github.com/joshjung/deliverance-star"
	"github.com/joshjung/deliverance-star/internal/config"
)

// Exit codes for bookgen.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build or clean check
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitDrift   = 4 // --check found artifacts out of date
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrArtifactDrift) {
		return ExitDrift
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, deliverance.ErrSourceRead) ||
		errors.Is(err, deliverance.ErrArtifactNotFound) ||
		errors.Is(err, deliverance.ErrArtifactWrite) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoSource) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, deliverance.ErrEmptySource) {
		return ExitUsage
	}

	return ExitGeneral
}
