package logger

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/orgoj/originlog/internal/logger/mocks"
)

var originPattern = regexp.MustCompile(`^\S+: \d+$`)

// logLine is a parsed output line with padding removed.
type logLine struct {
	Level, Timestamp, Hostname, Filename, Origin, Message string
}

func parseLine(t *testing.T, line string) logLine {
	t.Helper()
	cols := strings.SplitN(line, " | ", 6)
	require.Len(t, cols, 6, "malformed log line: %q", line)
	return logLine{
		Level:     strings.TrimSpace(cols[0]),
		Timestamp: cols[1],
		Hostname:  strings.TrimSpace(cols[2]),
		Filename:  strings.TrimSpace(cols[3]),
		Origin:    strings.TrimSpace(cols[4]),
		Message:   cols[5],
	}
}

func newTestRegistry(t *testing.T, hostName string) *Registry {
	t.Helper()
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockHostResolver(ctrl)
	resolver.EXPECT().Hostname().Return(hostName, nil).AnyTimes()

	reg := NewRegistry(WithHostResolver(resolver))
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

func TestRegistry_EndToEnd(t *testing.T) {
	path := tempLogFilePath(t, "t.log")
	var console bytes.Buffer
	reg := newTestRegistry(t, "test-host")

	lgr, err := reg.Configure(Options{OutputFile: path, Level: "WARNING", ShowConsoleOutput: false, Console: &console})
	require.NoError(t, err)

	_, _, line, _ := runtime.Caller(0)
	lgr.Error("boom")

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	got := parseLine(t, lines[0])
	assert.Equal(t, "ERROR", got.Level)
	assert.Equal(t, "test-host", got.Hostname)
	assert.Equal(t, "manager_test.go", got.Filename)
	assert.Equal(t, fmt.Sprintf("TestRegistry_EndToEnd: %d", line+1), got.Origin)
	assert.Equal(t, "boom", got.Message)
	assert.Zero(t, console.Len(), "console output must stay empty")
}

func TestRegistry_LevelFiltering(t *testing.T) {
	path := tempLogFilePath(t, "levels.log")
	reg := newTestRegistry(t, "test-host")

	lgr, err := reg.Configure(Options{OutputFile: path, Level: "INFO"})
	require.NoError(t, err)

	lgr.Debug("debug message")
	lgr.Info("info message")
	lgr.Warning("warning message")
	lgr.Error("error message")
	lgr.Critical("critical message")

	lines := readLines(t, path)
	require.Len(t, lines, 4, "DEBUG must be dropped at INFO level")

	wantLevels := []string{"INFO", "WARNING", "ERROR", "CRITICAL"}
	for i, raw := range lines {
		got := parseLine(t, raw)
		assert.Equal(t, wantLevels[i], got.Level)
		assert.NotEmpty(t, got.Hostname)
		assert.Regexp(t, originPattern, got.Origin)
		assert.True(t, strings.HasPrefix(got.Origin, "TestRegistry_LevelFiltering: "), got.Origin)
		assert.Equal(t, strings.ToLower(wantLevels[i])+" message", got.Message)
	}
}

func TestRegistry_WrapperMethodsReportCaller(t *testing.T) {
	path := tempLogFilePath(t, "wrapper.log")
	reg := newTestRegistry(t, "test-host")

	lgr, err := reg.Configure(Options{OutputFile: path, Level: "DEBUG"})
	require.NoError(t, err)

	_, _, line, _ := runtime.Caller(0)
	lgr.Criticalf("disk %s", "full")
	lgr.Warningf("retry %d", 3)
	lgr.WithField("attempt", 2).Info("with field")

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	for i, raw := range lines {
		got := parseLine(t, raw)
		assert.Equal(t, fmt.Sprintf("TestRegistry_WrapperMethodsReportCaller: %d", line+1+i), got.Origin)
	}
	assert.Equal(t, "disk full", parseLine(t, lines[0]).Message)
	assert.Equal(t, "retry 3", parseLine(t, lines[1]).Message)
	assert.Equal(t, "with field attempt=2", parseLine(t, lines[2]).Message)
}

func TestRegistry_ConsoleOutput(t *testing.T) {
	tests := []struct {
		name        string
		showConsole bool
	}{
		{"console enabled", true},
		{"console disabled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tempLogFilePath(t, "console.log")
			var console bytes.Buffer
			reg := newTestRegistry(t, "test-host")

			lgr, err := reg.Configure(Options{OutputFile: path, Level: "INFO", ShowConsoleOutput: tt.showConsole, Console: &console})
			require.NoError(t, err)
			lgr.Info("hello")

			fileLines := readLines(t, path)
			require.Len(t, fileLines, 1, "file output is always emitted")

			if tt.showConsole {
				assert.Equal(t, []string{ConsoleSinkName, path}, reg.Sinks())
				assert.Equal(t, fileLines[0]+"\n", console.String())
			} else {
				assert.Equal(t, []string{path}, reg.Sinks())
				assert.Zero(t, console.Len())
			}
		})
	}
}

func TestRegistry_ReconfigureReplacesSinks(t *testing.T) {
	path := tempLogFilePath(t, "twice.log")
	var console bytes.Buffer
	reg := newTestRegistry(t, "test-host")

	first, err := reg.Configure(Options{OutputFile: path, Level: "INFO", ShowConsoleOutput: true, Console: &console})
	require.NoError(t, err)
	second, err := reg.Configure(Options{OutputFile: path, Level: "INFO"})
	require.NoError(t, err)
	assert.Same(t, first, second)

	second.Info("once")

	assert.Len(t, readLines(t, path), 1, "a log call must not be duplicated after reconfiguration")
	assert.Zero(t, console.Len(), "sinks of the previous configuration must be detached")
	assert.Equal(t, []string{path}, reg.Sinks())
}

func TestRegistry_ReconfigureSwitchesFile(t *testing.T) {
	first := tempLogFilePath(t, "first.log")
	second := tempLogFilePath(t, "second.log")
	reg := newTestRegistry(t, "test-host")

	lgr, err := reg.Configure(Options{OutputFile: first, Level: "INFO"})
	require.NoError(t, err)
	lgr.Info("to first")

	_, err = reg.Configure(Options{OutputFile: second, Level: "ERROR"})
	require.NoError(t, err)
	lgr.Info("dropped")
	lgr.Error("to second")

	assert.Len(t, readLines(t, first), 1)
	lines := readLines(t, second)
	require.Len(t, lines, 1)
	assert.Equal(t, "to second", parseLine(t, lines[0]).Message)
}

func TestRegistry_InvalidLevel(t *testing.T) {
	path := tempLogFilePath(t, "invalid.log")
	reg := newTestRegistry(t, "test-host")

	lgr, err := reg.Configure(Options{OutputFile: path, Level: "TRACE"})
	require.Error(t, err)
	assert.Nil(t, lgr)
	assert.True(t, errors.Is(err, ErrInvalidLevel))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no sink may be created for an invalid level")
	assert.Empty(t, reg.Sinks())
}

func TestRegistry_FailedConfigureKeepsPrevious(t *testing.T) {
	path := tempLogFilePath(t, "kept.log")
	reg := newTestRegistry(t, "test-host")

	lgr, err := reg.Configure(Options{OutputFile: path, Level: "INFO"})
	require.NoError(t, err)

	_, err = reg.Configure(Options{OutputFile: filepath.Join(t.TempDir(), "missing", "x.log"), Level: "INFO"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")

	_, err = reg.Configure(Options{OutputFile: path, Level: "bogus"})
	require.Error(t, err)

	lgr.Info("still here")
	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "still here", parseLine(t, lines[0]).Message)
}

func TestRegistry_NameResolvesToRoot(t *testing.T) {
	reg := newTestRegistry(t, "test-host")

	unnamed, err := reg.Configure(Options{OutputFile: tempLogFilePath(t, "a.log")})
	require.NoError(t, err)
	named, err := reg.Configure(Options{Name: "worker", OutputFile: tempLogFilePath(t, "b.log")})
	require.NoError(t, err)

	assert.Same(t, reg.Root(), unnamed)
	assert.Same(t, reg.Root(), named)
	assert.Equal(t, RootLoggerName, named.Name())
}

func TestRegistry_Defaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	reg := newTestRegistry(t, "test-host")

	lgr, err := reg.Configure(Options{})
	require.NoError(t, err)
	lgr.Debug("dropped")
	lgr.Info("kept")

	lines := readLines(t, DefaultOutputFile)
	require.Len(t, lines, 1)
	assert.Equal(t, "INFO", parseLine(t, lines[0]).Level)
}

func TestRegistry_HostnameFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockHostResolver(ctrl)
	resolver.EXPECT().Hostname().Return("", errors.New("no uts namespace")).Times(2)

	path := tempLogFilePath(t, "nohost.log")
	reg := NewRegistry(WithHostResolver(resolver))
	defer reg.Close()

	lgr, err := reg.Configure(Options{OutputFile: path, Level: "INFO"})
	require.NoError(t, err, "hostname failure must not abort configuration")
	lgr.Info("one")
	lgr.Info("two")

	for _, raw := range readLines(t, path) {
		assert.Equal(t, UnknownHostname, parseLine(t, raw).Hostname)
	}
}

func TestRegistry_OSHostname(t *testing.T) {
	want, err := os.Hostname()
	if err != nil || want == "" {
		t.Skip("hostname not available")
	}

	path := tempLogFilePath(t, "oshost.log")
	reg := NewRegistry()
	defer reg.Close()

	lgr, err := reg.Configure(Options{OutputFile: path, Level: "INFO"})
	require.NoError(t, err)
	lgr.Info("hi")

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, want, parseLine(t, lines[0]).Hostname)
}

func TestRegistry_ConcurrentLogging(t *testing.T) {
	path := tempLogFilePath(t, "concurrent.log")
	var console bytes.Buffer
	reg := newTestRegistry(t, "test-host")

	lgr, err := reg.Configure(Options{OutputFile: path, Level: "INFO", ShowConsoleOutput: true, Console: &console})
	require.NoError(t, err)

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				lgr.Infof("worker %d line %d", w, i)
			}
		}(w)
	}
	wg.Wait()

	lines := readLines(t, path)
	require.Len(t, lines, workers*perWorker)
	for _, raw := range lines {
		got := parseLine(t, raw)
		assert.Equal(t, "INFO", got.Level)
		assert.Regexp(t, originPattern, got.Origin)
	}
	assert.Equal(t, workers*perWorker, strings.Count(console.String(), "\n"))
}

func TestRegistry_Close(t *testing.T) {
	path := tempLogFilePath(t, "closed.log")
	reg := newTestRegistry(t, "test-host")

	lgr, err := reg.Configure(Options{OutputFile: path, Level: "INFO"})
	require.NoError(t, err)
	require.NoError(t, reg.Close())
	assert.Empty(t, reg.Sinks())

	lgr.Info("after close")
	assert.Empty(t, readLines(t, path))
	assert.NoError(t, reg.Close(), "closing twice is harmless")
}

func TestStartLogger(t *testing.T) {
	path := tempLogFilePath(t, "start.log")
	t.Cleanup(func() { _ = Shutdown() })

	lgr, err := StartLogger("", path, "WARNING", false)
	require.NoError(t, err)
	assert.Same(t, Root(), lgr)

	lgr.Info("dropped")
	lgr.Warning("kept")

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "WARNING", parseLine(t, lines[0]).Level)
	assert.True(t, strings.HasPrefix(parseLine(t, lines[0]).Origin, "TestStartLogger: "))
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "", opts.Name)
	assert.Equal(t, DefaultOutputFile, opts.OutputFile)
	assert.Equal(t, DefaultLevel, opts.Level)
	assert.True(t, opts.ShowConsoleOutput)
}
