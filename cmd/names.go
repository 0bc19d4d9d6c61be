package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginanjarn/cmaketools/script"
)

var namesKind string

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "List known CMake names, warming the on-disk cache",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		kinds := script.AllKinds()
		if namesKind != "all" {
			kind, ok := script.ParseKind(namesKind)
			if !ok {
				logger.Fatal("Unknown name kind", zap.String("kind", namesKind))
			}
			kinds = []script.NameKind{kind}
		}

		reg, err := newRegistry()
		if err != nil {
			logger.Fatal("Failed to open name registry", zap.Error(err))
		}

		for _, kind := range kinds {
			names, err := reg.Names(ctx, kind)
			if err != nil {
				logger.Fatal("Failed to list names", zap.String("kind", kind.String()), zap.Error(err))
			}
			for _, name := range names {
				fmt.Printf("%s\t%s\n", name.Name, name.Kind)
			}
		}
	},
}

func init() {
	namesCmd.Flags().StringVar(&namesKind, "kind", "all", "Name kind to list (command|module|policy|property|variable|all)")
}
