package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/rewind/internal/compiler"
	"github.com/aretw0/rewind/pkg/adapters/file"
	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/fsm"
	"github.com/aretw0/rewind/pkg/observability"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/aretw0/rewind/pkg/session"
)

// localSessionID names the throwaway session used when no --session is given.
const localSessionID = "local"

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	DefinitionPath string
	SessionID      string // Empty means an in-memory session
	SessionDir     string
	Fresh          bool
	Quiet          bool
	LogLevel       slog.Level
}

// Execute loads the definition and runs the interactive loop until the input
// ends, the user quits or ctx is cancelled.
func Execute(ctx context.Context, opts RunOptions, in io.Reader, out io.Writer) error {
	def, err := compiler.NewParser().ParseFile(opts.DefinitionPath)
	if err != nil {
		return err
	}

	logger := createLogger(opts.LogLevel)

	var store ports.SnapshotStore = memory.NewStore()
	sessionID := localSessionID
	if opts.SessionID != "" {
		store = file.New(opts.SessionDir)
		sessionID = opts.SessionID
	}

	manager := session.NewManager(def, store,
		session.WithLogger(logger),
		session.WithMachineOptions(fsm.WithLifecycleHooks(observability.LogHooks(logger))),
	)

	if opts.Fresh {
		if err := manager.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to reset session: %w", err)
		}
	}

	repl := NewRepl(manager, sessionID, in, out)
	repl.Quiet = opts.Quiet
	return handleExecutionError(repl.Run(ctx))
}
