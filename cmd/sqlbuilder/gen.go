package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxshaw/sqlbuilder/gen"
)

var (
	genModels  string
	genOutput  string
	genPackage string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate typed column selectors for model structs",
	Example: `  sqlbuilder gen --models internal/model --output internal/model`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := gen.Options{
			Models:  resolveString(genModels, cfg.Gen.Models),
			Output:  resolveString(genOutput, cfg.Gen.Output),
			Package: resolveString(genPackage, cfg.Gen.Package),
		}

		written, err := gen.Gen(opts)
		if err != nil {
			return err
		}
		if !quiet {
			for _, path := range written {
				fmt.Println("wrote", path)
			}
		}
		return nil
	},
}

func init() {
	f := genCmd.Flags()
	f.StringVar(&genModels, "models", "", "model source directory")
	f.StringVar(&genOutput, "output", "", "output directory")
	f.StringVar(&genPackage, "package", "", "package name of the generated files")
}
