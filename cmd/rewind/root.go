package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/rewind/internal/compiler"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/adapters/file"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rewind",
	Short: "Rewind is a finite state machine with undo/redo history",
	Long: `Rewind loads a state machine definition (YAML or JSON), fires events against it
and keeps a navigable history of visited states, either interactively, as
persistent sessions on disk, or behind an HTTP API.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Project directory holding the .rewind session folder")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

func loggerFrom(cmd *cobra.Command) (*slog.Logger, slog.Level, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, level, err
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level), level, nil
}

// sessionDir resolves <dir>/.rewind/sessions.
func sessionDir(cmd *cobra.Command) string {
	projectDir, _ := cmd.Flags().GetString("dir")
	if projectDir == "" {
		projectDir = "."
	}
	return filepath.Join(projectDir, file.DefaultDir)
}

func sessionStore(cmd *cobra.Command) *file.Store {
	return file.New(sessionDir(cmd))
}

func loadDefinition(path string) (domain.Definition, error) {
	def, err := compiler.NewParser().ParseFile(path)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("failed to load definition: %w", err)
	}
	return def, nil
}
