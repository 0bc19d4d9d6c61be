package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginanjarn/cmaketools/parser"
	"github.com/ginanjarn/cmaketools/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check CMake scripts for syntax errors",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config, err := pipeline.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		if failed := runCheck(ctx, config, args); failed {
			os.Exit(1)
		}
	},
}

func runCheck(ctx context.Context, config pipeline.Config, paths []string) bool {
	scripts, err := pipeline.FindScripts(paths, config.Exclude)
	if err != nil {
		logger.Fatal("Failed to collect scripts", zap.Error(err))
	}

	failed := false
	for _, path := range scripts {
		if ctx.Err() != nil {
			logger.Error("Check aborted", zap.Error(ctx.Err()))
			return true
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("Failed to read file", zap.String("file", path), zap.Error(err))
			failed = true
			continue
		}

		if _, err := parser.Parse(string(data)); err != nil {
			reportError(path, string(data), err)
			failed = true
		}
	}
	return failed
}
