package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginanjarn/cmaketools/script"
)

var hoverCmd = &cobra.Command{
	Use:   "hover <file> <row>:<col>",
	Short: "Show documentation for the identifier at a cursor position",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		src, row, col := loadCursorArgs(args)

		reg, err := newRegistry()
		if err != nil {
			logger.Fatal("Failed to open name registry", zap.Error(err))
		}

		name, err := script.NewScript(src, reg).Help(ctx, row, col)
		if err != nil {
			logger.Fatal("Hover lookup failed", zap.Error(err))
		}
		if name == nil {
			// nothing under the cursor; not an error
			return
		}

		doc, err := reg.Documentation(ctx, name.Kind, name.Name)
		if err != nil {
			logger.Fatal("Failed to fetch documentation", zap.Error(err))
		}
		fmt.Printf("%s (%s)\n\n%s", name.Name, name.Kind, doc)
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <file> <row>:<col>",
	Short: "List completion candidates for a cursor position",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println("error: expected <file> <row>:<col>")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		src, row, col := loadCursorArgs(args)

		reg, err := newRegistry()
		if err != nil {
			logger.Fatal("Failed to open name registry", zap.Error(err))
		}

		names, err := script.NewScript(src, reg).Complete(ctx, row, col)
		if err != nil {
			logger.Fatal("Completion lookup failed", zap.Error(err))
		}
		for _, name := range names {
			fmt.Printf("%s\t%s\n", name.Name, name.Kind)
		}
	},
}

// loadCursorArgs reads the file argument and parses a 1-based "<row>:<col>"
// cursor into the 0-based coordinates the script package uses.
func loadCursorArgs(args []string) (source string, row, col int) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		logger.Fatal("Failed to read file", zap.String("file", args[0]), zap.Error(err))
	}

	row, col, err = parseCursor(args[1])
	if err != nil {
		logger.Fatal("Invalid cursor", zap.String("cursor", args[1]), zap.Error(err))
	}
	return string(data), row, col
}

func parseCursor(arg string) (row, col int, err error) {
	parts := strings.SplitN(arg, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected <row>:<col>, got %q", arg)
	}

	r, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row %q", parts[0])
	}
	c, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column %q", parts[1])
	}
	if r < 1 || c < 1 {
		return 0, 0, fmt.Errorf("row and column are 1-based, got %q", arg)
	}
	return r - 1, c - 1, nil
}
