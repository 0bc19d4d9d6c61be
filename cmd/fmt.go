package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/pkg/diff"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginanjarn/cmaketools/formatter"
	"github.com/ginanjarn/cmaketools/internal/diag"
	"github.com/ginanjarn/cmaketools/parser"
	"github.com/ginanjarn/cmaketools/pipeline"
)

var (
	writeInPlace bool
	showDiff     bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [paths...]",
	Short: "Format CMake scripts",
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

		runFmt(ctx, config, args, writeInPlace, showDiff)
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "Write formatted output back to the source files")
	fmtCmd.Flags().BoolVar(&showDiff, "diff", false, "Print a unified diff instead of the formatted text")
}

// fmtOutcome keeps per-file texts around for printing after the batch.
type fmtOutcome struct {
	source    string
	formatted string
}

func runFmt(ctx context.Context, config pipeline.Config, paths []string, write, showDiff bool) {
	scripts, err := pipeline.FindScripts(paths, config.Exclude)
	if err != nil {
		logger.Fatal("Failed to collect scripts", zap.Error(err))
	}

	f := config.Formatter()

	var mu sync.Mutex
	outcomes := make(map[string]fmtOutcome, len(scripts))

	results, err := pipeline.ProcessFiles(ctx, logger, scripts, func(path string) (bool, error) {
		changed, outcome, err := formatFile(f, path, write)
		mu.Lock()
		outcomes[path] = outcome
		mu.Unlock()
		if err != nil {
			return false, err
		}
		return changed, nil
	})
	if err != nil {
		logger.Fatal("Formatting aborted", zap.Error(err))
	}

	failed := reportResults(scripts, results, outcomes, write, showDiff)
	if failed {
		os.Exit(1)
	}
}

func formatFile(f *formatter.Formatter, path string, write bool) (bool, fmtOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmtOutcome{}, fmt.Errorf("reading %s: %w", path, err)
	}
	source := string(data)

	formatted, err := f.Format(source)
	if err != nil {
		return false, fmtOutcome{source: source}, err
	}

	changed := formatted != source
	if write && changed {
		if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
			return false, fmtOutcome{}, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return changed, fmtOutcome{source: source, formatted: formatted}, nil
}

// reportResults prints per-file output in input order and reports whether any
// file failed.
func reportResults(scripts []string, results []pipeline.Result, outcomes map[string]fmtOutcome, write, showDiff bool) bool {
	byPath := make(map[string]pipeline.Result, len(results))
	for _, res := range results {
		byPath[res.Path] = res
	}

	failed := false
	for _, path := range scripts {
		res := byPath[path]
		if res.Err != nil {
			failed = true
			reportError(path, outcomes[path].source, res.Err)
			continue
		}

		outcome := outcomes[path]
		switch {
		case write:
			if res.Changed {
				fmt.Println(path)
			}
		case showDiff:
			if res.Changed {
				if err := diff.Text("a/"+path, "b/"+path, outcome.source, outcome.formatted, os.Stdout); err != nil {
					logger.Error("Failed to render diff", zap.String("file", path), zap.Error(err))
				}
			}
		default:
			fmt.Print(outcome.formatted)
		}
	}
	return failed
}

func reportError(path, source string, err error) {
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		fmt.Fprint(os.Stderr, diag.Render(path, source, syntaxErr))
		return
	}
	logger.Error("Failed to process file", zap.String("file", path), zap.Error(err))
}
