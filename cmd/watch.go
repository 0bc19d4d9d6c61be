package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginanjarn/cmaketools/formatter"
	"github.com/ginanjarn/cmaketools/pipeline"
)

var watchWrite bool

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Watch directories and check or format CMake scripts on change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		config, err := pipeline.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		if err := runWatch(config, args, watchWrite); err != nil {
			logger.Fatal("Watch failed", zap.Error(err))
		}
	},
}

func init() {
	watchCmd.Flags().BoolVarP(&watchWrite, "write", "w", false, "Format changed scripts in place instead of only checking them")
}

// inflightGate admits at most one in-flight job per key and drops overlapping
// requests instead of queuing them.
type inflightGate struct {
	mu     sync.Mutex
	active map[string]bool
}

func newInflightGate() *inflightGate {
	return &inflightGate{active: make(map[string]bool)}
}

func (g *inflightGate) tryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active[key] {
		return false
	}
	g.active[key] = true
	return true
}

func (g *inflightGate) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}

func runWatch(config pipeline.Config, dirs []string, write bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("adding %s to watcher: %w", dir, err)
		}
	}

	logger.Info("Watching for changes", zap.Strings("dirs", dirs))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	gate := newInflightGate()
	f := config.Formatter()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !pipeline.IsScript(event.Name) {
				continue
			}
			if !gate.tryAcquire(event.Name) {
				// a job for this file is already running; drop the event
				continue
			}
			go func(path string) {
				defer gate.release(path)
				handleScriptChange(f, path, write)
			}(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))

		case <-interrupt:
			logger.Info("Stopping watcher")
			return nil
		}
	}
}

func handleScriptChange(f *formatter.Formatter, path string, write bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to read changed file", zap.String("file", path), zap.Error(err))
		return
	}
	source := string(data)

	formatted, err := f.Format(source)
	if err != nil {
		reportError(path, source, err)
		return
	}
	if formatted == source {
		return
	}

	if !write {
		logger.Info("File needs formatting", zap.String("file", path))
		return
	}
	if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
		logger.Error("Failed to write formatted file", zap.String("file", path), zap.Error(err))
		return
	}
	logger.Info("Reformatted", zap.String("file", path))
}
