package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginanjarn/cmaketools/formatter"
)

func TestIsScript(t *testing.T) {
	t.Parallel()

	assert.True(t, IsScript("CMakeLists.txt"))
	assert.True(t, IsScript("sub/dir/CMakeLists.txt"))
	assert.True(t, IsScript("toolchain.cmake"))
	assert.False(t, IsScript("main.c"))
	assert.False(t, IsScript("notes.txt"))
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestFindScripts(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"CMakeLists.txt":     "project(x)\n",
		"cmake/util.cmake":   "# helpers\n",
		"src/CMakeLists.txt": "add_library(y y.c)\n",
		"src/main.c":         "int main(void){return 0;}\n",
		"build/gen.cmake":    "# generated\n",
		"docs/readme.txt":    "-\n",
	})

	scripts, err := FindScripts([]string{dir}, []string{"build"})
	require.NoError(t, err)

	rel := make([]string, 0, len(scripts))
	for _, s := range scripts {
		r, err := filepath.Rel(dir, s)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	sort.Strings(rel)

	assert.Equal(t, []string{"CMakeLists.txt", "cmake/util.cmake", "src/CMakeLists.txt"}, rel)
}

func TestFindScriptsExplicitFile(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"any.txt": "x"})
	path := filepath.Join(dir, "any.txt")

	// explicitly named files are taken as-is, extension aside
	scripts, err := FindScripts([]string{path}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, scripts)
}

func TestFindScriptsMissingPath(t *testing.T) {
	t.Parallel()

	_, err := FindScripts([]string{"/does/not/exist"}, nil)
	assert.Error(t, err)
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"a.cmake": "a(  x )\n",
		"b.cmake": "b(y)\n",
		"c.cmake": "broken(\n",
	})

	var processed atomic.Int32
	f := formatter.New()

	results, err := ProcessFiles(context.Background(), nil,
		[]string{filepath.Join(dir, "a.cmake"), filepath.Join(dir, "b.cmake"), filepath.Join(dir, "c.cmake")},
		func(path string) (bool, error) {
			processed.Add(1)
			data, err := os.ReadFile(path)
			if err != nil {
				return false, err
			}
			formatted, err := f.Format(string(data))
			if err != nil {
				return false, err
			}
			return formatted != string(data), nil
		})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, int32(3), processed.Load())

	byPath := make(map[string]Result, len(results))
	for _, res := range results {
		byPath[filepath.Base(res.Path)] = res
	}

	assert.True(t, byPath["a.cmake"].Changed)
	assert.NoError(t, byPath["a.cmake"].Err)
	assert.False(t, byPath["b.cmake"].Changed)
	assert.Error(t, byPath["c.cmake"].Err, "syntax errors stay per-file")
}

func TestProcessFilesEmpty(t *testing.T) {
	t.Parallel()

	results, err := ProcessFiles(context.Background(), nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestProcessFilesCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ProcessFiles(ctx, nil, []string{"x"}, func(string) (bool, error) { return false, nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadConfigDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
	assert.Equal(t, formatter.DefaultMaxBlankLines, config.Formatter().MaxBlankLines)
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: demo\nmax-blank-lines: 1\nexclude:\n  - build\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", config.Name)
	assert.Equal(t, 1, config.MaxBlankLines)
	assert.Equal(t, []string{"build"}, config.Exclude)
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
