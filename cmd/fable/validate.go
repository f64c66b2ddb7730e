package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/fable/internal/loader"
	"github.com/aretw0/fable/internal/presentation"
	"github.com/aretw0/fable/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <blueprint.yaml> [more...]",
	Short: "Check story blueprints for consistency",
	Long:  `Parses each blueprint and verifies its contract. With multiple files, the contracts are unioned to prove the stories can share one state schema (name collisions are reported).`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Println(presentation.Fail(err.Error()))
			os.Exit(1)
		}
		fmt.Println(presentation.OK("blueprints are valid"))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, paths []string) error {
	logger := newLogger(cmd)

	var combined *schema.Schema
	for _, path := range paths {
		bp, err := loader.Load(path)
		if err != nil {
			return err
		}
		logger.Debug("blueprint parsed", "story", bp.Name, "contract", bp.Contract.Len())

		if combined == nil {
			combined = bp.Contract
			continue
		}
		combined, err = schema.Union(combined, bp.Contract)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
