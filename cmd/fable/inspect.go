package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/fable/internal/loader"
	"github.com/aretw0/fable/internal/presentation"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <blueprint.yaml>",
	Short: "Render a story blueprint",
	Long:  `Parses a blueprint file and renders its contract and step tree, including nested stories.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(cmd, args[0]); err != nil {
			fmt.Println(presentation.Fail(err.Error()))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, path string) error {
	logger := newLogger(cmd)

	bp, err := loader.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("blueprint loaded", "story", bp.Name, "steps", len(bp.Steps))

	out, err := presentation.Render(bp)
	if err != nil {
		// Fall back to raw markdown if the terminal renderer fails.
		fmt.Println(presentation.Markdown(bp))
		return nil
	}
	fmt.Print(out)
	return nil
}
