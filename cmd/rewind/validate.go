package main

import (
	"fmt"

	"github.com/aretw0/rewind/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <definition>",
	Short: "Check the definition for consistency",
	Long:  `Crawls the definition from its initial state and reports an undefined initial state, dangling targets or unreachable states.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := loadDefinition(args[0])
		if err != nil {
			return err
		}
		if err := validator.ValidateDefinition(def); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Definition is valid! ✅ (%d states)\n", len(def.States))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
