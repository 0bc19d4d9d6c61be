// Package registry fetches CMake name lists (commands, modules, policies,
// properties, variables) from the cmake executable and caches them on disk.
// It implements script.Registry for the completion and hover services.
package registry

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ginanjarn/cmaketools/script"
)

// Runner executes the external cmake binary. Split out so tests can inject a
// fake instead of requiring cmake on PATH.
type Runner interface {
	Output(ctx context.Context, args ...string) ([]byte, error)
}

type execRunner struct {
	path string
}

func (r execRunner) Output(ctx context.Context, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, r.path, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("running %s %s: %w", r.path, strings.Join(args, " "), err)
	}
	// cmake on Windows emits CRLF
	return bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n")), nil
}

// Registry serves name lists from an in-memory memo, falling back to the disk
// cache and finally to the cmake executable. Safe for concurrent use.
type Registry struct {
	runner Runner
	cache  *Cache
	logger *zap.Logger

	mu    sync.Mutex
	names map[script.NameKind][]script.Name
}

var _ script.Registry = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithRunner substitutes the cmake subprocess runner.
func WithRunner(r Runner) Option {
	return func(reg *Registry) { reg.runner = r }
}

// WithCmakePath points the default runner at a specific cmake binary.
func WithCmakePath(path string) Option {
	return func(reg *Registry) { reg.runner = execRunner{path: path} }
}

// New returns a registry backed by the given cache directory. A nil logger
// disables logging.
func New(logger *zap.Logger, cacheDir string, opts ...Option) (*Registry, error) {
	cache, err := NewCache(cacheDir)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	reg := &Registry{
		runner: execRunner{path: "cmake"},
		cache:  cache,
		logger: logger,
		names:  make(map[script.NameKind][]script.Name),
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg, nil
}

// Names returns the name list for a kind, fetching and caching it on first
// use.
func (r *Registry) Names(ctx context.Context, kind script.NameKind) ([]script.Name, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if names, ok := r.names[kind]; ok {
		return names, nil
	}
	if names, ok := r.cache.Load(kind); ok {
		r.names[kind] = names
		return names, nil
	}

	names, err := r.fetch(ctx, kind)
	if err != nil {
		return nil, err
	}
	r.names[kind] = names

	if err := r.cache.Store(kind, names); err != nil {
		// a failed cache write only costs a refetch next run
		r.logger.Warn("failed to persist name cache", zap.String("kind", kind.String()), zap.Error(err))
	}
	return names, nil
}

func (r *Registry) fetch(ctx context.Context, kind script.NameKind) ([]script.Name, error) {
	r.logger.Debug("fetching name list", zap.String("kind", kind.String()))

	out, err := r.runner.Output(ctx, fmt.Sprintf("--help-%s-list", kind))
	if err != nil {
		return nil, err
	}

	var names []script.Name
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, script.Name{Name: line, Kind: kind})
	}
	return names, nil
}

// Documentation fetches the help text for one name on demand. Not cached:
// hover asks for a single name at a time.
func (r *Registry) Documentation(ctx context.Context, kind script.NameKind, name string) (string, error) {
	out, err := r.runner.Output(ctx, fmt.Sprintf("--help-%s", kind), name)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
