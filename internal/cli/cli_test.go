package cli

// Test Plan for CLI commands:
// - search prints module-level matches and the not-found message when nothing matches
// - search --nested reaches nested classes and --grep matches raw class lines
// - show prints a class or the not-found message without failing
// - tree prints the context tree of one file with either engine
// - tree reports unknown engines and unreadable files
// - hierarchy prints subclasses by depth, ancestors on request, not-found otherwise
// - loadProject reads .jones/config.yml and fails on invalid configuration
// - CLIProgressReporter prints progress and statistics unless quiet
// - version prints the build information

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mvp-joe/jones/internal/config"
	"github.com/mvp-joe/jones/internal/display"
	"github.com/mvp-joe/jones/internal/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtures = "../../testdata/python"

const notFound = "Output: " + display.NotFoundMessage + "\n"

func fixtureSearcher(t *testing.T) *navigation.Searcher {
	t.Helper()
	searcher, err := navigation.FromConfig(fixtures, config.Default(), nil)
	require.NoError(t, err)
	t.Cleanup(searcher.Close)
	return searcher
}

func TestExecuteSearch(t *testing.T) {
	t.Parallel()

	searcher := fixtureSearcher(t)
	run := func(params searchParams) string {
		var buf bytes.Buffer
		require.NoError(t, executeSearch(context.Background(), searcher, display.NewPrinter(&buf, false), params))
		return buf.String()
	}

	t.Run("module level", func(t *testing.T) {
		out := run(searchParams{keyword: "Animal"})
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "> [FOUND MATCHES]", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], ":: Animal -> "), lines[1])
		assert.True(t, strings.HasSuffix(lines[1], filepath.Join("zoo", "animals.py")), lines[1])
		assert.True(t, strings.HasPrefix(lines[2], ":: _HiddenAnimal -> "), lines[2])
	})

	t.Run("not found", func(t *testing.T) {
		assert.Equal(t, notFound, run(searchParams{keyword: "Dragon"}))
	})

	t.Run("nested", func(t *testing.T) {
		assert.Equal(t, notFound, run(searchParams{keyword: "Whiskers"}))
		assert.Contains(t, run(searchParams{keyword: "Whiskers", nested: true}), ":: Whiskers -> ")
	})

	t.Run("grep", func(t *testing.T) {
		out := run(searchParams{keyword: "Bird", grep: true})
		assert.Contains(t, out, ":: class Bird(Animal): -> ")
		assert.Contains(t, out, ":: class Parrot(Bird): -> ")
	})
}

func TestExecuteShow(t *testing.T) {
	t.Parallel()

	searcher := fixtureSearcher(t)

	var buf bytes.Buffer
	require.NoError(t, executeShow(context.Background(), searcher, display.NewPrinter(&buf, false), "Human"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Class :: [Human]\n"), out)
	assert.Contains(t, out, "* inherit -> Being, Earthling\n")
	assert.Contains(t, out, ":: [greet] -> str\n")
	assert.Contains(t, out, "  * other: Human\n")

	buf.Reset()
	require.NoError(t, executeShow(context.Background(), searcher, display.NewPrinter(&buf, false), "Dragon"))
	assert.Equal(t, notFound, buf.String())
}

func TestExecuteTree(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "god.py")
	src := "class God:\n    \"\"\"DocString\"\"\"\n    def __init__(self, name: int):\n        self.name = name\n\n    def hi(self) -> None:\n        print(name)\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	for _, engine := range []string{config.EngineScanner, config.EngineTreeSitter} {
		t.Run(engine, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, executeTree(context.Background(), display.NewPrinter(&buf, false), path, engine))

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			require.Len(t, lines, 5)
			assert.Equal(t, "__root__", lines[0])
			assert.True(t, strings.HasPrefix(lines[1], "    class God (0:"), lines[1])
			assert.True(t, strings.HasPrefix(lines[2], "        docstring ("), lines[2])
			assert.True(t, strings.HasPrefix(lines[3], "        def __init__ ("), lines[3])
			assert.True(t, strings.HasPrefix(lines[4], "        def hi ("), lines[4])
		})
	}
}

func TestExecuteTree_Errors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printer := display.NewPrinter(&buf, false)

	err := executeTree(context.Background(), printer, filepath.Join(fixtures, "people.py"), "regex")
	assert.ErrorContains(t, err, "unknown engine")

	err = executeTree(context.Background(), printer, filepath.Join(t.TempDir(), "missing.py"), "")
	assert.ErrorContains(t, err, "failed to read")
	assert.Empty(t, buf.String())
}

func TestExecuteHierarchy(t *testing.T) {
	t.Parallel()

	searcher := fixtureSearcher(t)
	run := func(name string, ancestors bool) string {
		var buf bytes.Buffer
		require.NoError(t, executeHierarchy(context.Background(), searcher, display.NewPrinter(&buf, false), name, ancestors))
		return buf.String()
	}

	out := run("Animal", false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "Animal -> "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  :: Mammal (Animal) -> "), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "  :: _HiddenAnimal (Animal) -> "), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "  :: Bird (Animal) -> "), lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "    :: Cat (Mammal) -> "), lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "    :: Parrot (Bird) -> "), lines[5])

	out = run("Parrot", true)
	assert.Contains(t, out, "  :: Bird (Animal) -> ")
	assert.Contains(t, out, "    :: Animal () -> ")

	assert.Equal(t, notFound, run("Dragon", false))
}

func TestLoadProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, config.Dir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.Dir, "config.yml"), []byte(`
search:
  engine: TreeSitter
  workers: 2
display:
  color: false
`), 0644))

	root, cfg, err := loadProject(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(root))
	assert.Equal(t, config.EngineTreeSitter, cfg.Search.Engine)
	assert.Equal(t, 2, cfg.Search.Workers)
	assert.False(t, cfg.Display.Color)

	bad := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(bad, config.Dir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bad, config.Dir, "config.yml"), []byte("search:\n  workers: -1\n"), 0644))
	_, _, err = loadProject(bad)
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestCLIProgressReporter(t *testing.T) {
	t.Parallel()

	stats := &navigation.SearchStats{FilesScanned: 2, FilesSkipped: 1, Matches: 3, Duration: 1500 * time.Millisecond}
	drive := func(r *CLIProgressReporter) {
		r.OnDiscoveryStart()
		r.OnDiscoveryComplete(3)
		r.OnFileProcessingStart(3)
		for _, name := range []string{"a.py", "b.py", "c.py"} {
			r.OnFileProcessed(name)
		}
		r.OnComplete(stats)
	}

	var quiet bytes.Buffer
	drive(NewCLIProgressReporter(&quiet, true))
	assert.Empty(t, quiet.String())

	var loud bytes.Buffer
	reporter := NewCLIProgressReporter(&loud, false)
	drive(reporter)
	out := loud.String()
	assert.Contains(t, out, "Discovering files...")
	assert.Contains(t, out, "Scanning 3 Python files")
	assert.Contains(t, out, "✓ Scanned 2 files in 1.50s: 3 matches")
	assert.Contains(t, out, "Skipped:    1")
	assert.NotContains(t, out, "Cache hits")
	assert.Equal(t, 3, reporter.processedFiles)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)

	assert.Equal(t, "Jones dev\nGit commit: none\nBuild date: unknown\n", buf.String())
}
