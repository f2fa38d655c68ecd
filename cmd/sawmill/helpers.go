// Shared helpers for sawmill CLI commands.
package main

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/sawmill/internal/solver"
	"github.com/mesh-intelligence/sawmill/internal/sqlite"
	"github.com/mesh-intelligence/sawmill/pkg/types"
)

// attachArchive resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachArchive() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	config := types.Config{
		Backend: cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(config); err != nil {
		return nil, fmt.Errorf("attach archive: %w", err)
	}

	return backend, nil
}

// solverOptions builds solver options from config.yaml values and the
// process logger. Per-run flags override individual fields afterwards.
func solverOptions() solver.Options {
	return solver.Options{
		Attempts:        cfg.GetInt(cfgKeyAttempts),
		TopN:            cfg.GetInt(cfgKeyTopN),
		Workers:         cfg.GetInt(cfgKeyWorkers),
		Cleanup:         cfg.GetBool(cfgKeyCleanup),
		SmallPieceRatio: cfg.GetFloat64(cfgKeySmallPieceRatio),
		ExhaustiveLimit: cfg.GetInt64(cfgKeyExhaustiveLimit),
		Logger:          logger,
	}
}

// userErrors are failures caused by the input rather than the system; they
// map to exit code 1.
var userErrors = []error{
	types.ErrInvalidBoard,
	types.ErrInvalidCut,
	types.ErrInvalidJob,
	types.ErrNoBoards,
	types.ErrNoCuts,
	types.ErrNegativeSpacing,
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrTableNotFound,
	solver.ErrInfeasible,
	solver.ErrCutTooLarge,
	solver.ErrSearchSpaceTooLarge,
	solver.ErrNoSolution,
}

// isUserError reports whether err should exit with the user-error code.
func isUserError(err error) bool {
	for _, sentinel := range userErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
