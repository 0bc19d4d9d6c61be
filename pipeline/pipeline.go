// Package pipeline discovers CMake scripts and runs per-file work over them
// with a bounded worker pool and terminal progress reporting.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// IsScript reports whether a path looks like a CMake script.
func IsScript(path string) bool {
	base := filepath.Base(path)
	return base == "CMakeLists.txt" || filepath.Ext(base) == ".cmake"
}

// FindScripts expands files and directories into the list of CMake scripts to
// process. Directories are walked recursively; excluded path fragments are
// skipped.
func FindScripts(paths []string, exclude []string) ([]string, error) {
	var scripts []string

	excluded := func(path string) bool {
		for _, fragment := range exclude {
			if fragment != "" && strings.Contains(path, fragment) {
				return true
			}
		}
		return false
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("accessing %s: %w", path, err)
		}

		if !info.IsDir() {
			if !excluded(path) {
				scripts = append(scripts, path)
			}
			continue
		}

		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() || !IsScript(p) || excluded(p) {
				return nil
			}
			scripts = append(scripts, p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	}

	return scripts, nil
}

// Result is the outcome of processing one file.
type Result struct {
	Path    string
	Changed bool
	Err     error
}

// ProcessFiles runs fn over every file with NumCPU workers and a progress
// bar. Per-file failures land in the file's Result; only context cancellation
// aborts the batch.
func ProcessFiles(ctx context.Context, logger *zap.Logger, files []string, fn func(path string) (bool, error)) ([]Result, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("processing"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	resultChan := make(chan Result, len(files))
	sem := make(chan struct{}, runtime.NumCPU())

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
		}

		go func(path string) {
			defer func() { <-sem }()

			changed, err := fn(path)
			if err != nil {
				logger.Debug("processing failed", zap.String("file", path), zap.Error(err))
			}
			resultChan <- Result{Path: path, Changed: changed, Err: err}
			_ = bar.Add(1)
		}(file)
	}

	results := make([]Result, 0, len(files))
	for range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-resultChan:
			results = append(results, res)
		}
	}
	fmt.Println()

	return results, nil
}
