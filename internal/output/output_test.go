package output

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo(&out, &errOut)
	l.SetNoColor(true)
	return l, &out, &errOut
}

func TestLogger_Streams(t *testing.T) {
	l, out, errOut := newTestLogger()

	l.Info("building %s", "hello")
	l.Success("done")
	l.Warn("marker not written")
	l.Error("compile failed")
	l.Debug("hidden")

	assert.Equal(t, "building hello\n✓ done\n", out.String())
	assert.Contains(t, errOut.String(), "Warning: marker not written")
	assert.Contains(t, errOut.String(), "Error: compile failed")
	assert.NotContains(t, errOut.String(), "hidden")

	l.SetVerbose(true)
	l.Debug("shown")
	assert.Contains(t, errOut.String(), "[DEBUG] shown")
}

func TestLogger_JSONModeKeepsStdoutClean(t *testing.T) {
	l, out, errOut := newTestLogger()
	l.SetJSONMode(true)

	l.Info("info")
	l.Success("ok")
	l.Bold("title")
	l.Warn("still visible")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "still visible")
}

func TestLogger_PrintCommandError(t *testing.T) {
	l, _, errOut := newTestLogger()
	info := &CommandErrorInfo{
		Operation: "compile",
		Command:   "c++",
		Args:      []string{"-c", "main.cpp"},
		ExitCode:  2,
		Error:     errors.New("exit status 2"),
	}

	l.PrintCommandError(info)
	assert.Contains(t, errOut.String(), "compile failed (exit status 2)")
	assert.Contains(t, errOut.String(), "exit status 2")
	assert.NotContains(t, errOut.String(), "c++ -c main.cpp")

	errOut.Reset()
	l.SetVerbose(true)
	l.PrintCommandError(info)
	assert.Contains(t, errOut.String(), "command: c++ -c main.cpp")
}

func TestProgress_ConcurrentSteps(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 10)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Step("unit")
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, p.Current())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 10)
	assert.Contains(t, buf.String(), "[10/10]")
}

func TestProgress_JSONModeCountsSilently(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 2)
	p.SetJSONMode(true)
	p.Step("a")
	assert.Equal(t, 1, p.Current())
	assert.Empty(t, buf.String())
}

func TestShouldColor(t *testing.T) {
	assert.False(t, ShouldColor(nil, false))
	assert.False(t, ShouldColor(nil, true))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ShouldColor(nil, false))
}

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	NewSlogLogger(&buf, false, false).Info("quiet")
	assert.Empty(t, buf.String())

	NewSlogLogger(&buf, true, false).Debug("compiled", "unit", "a.cpp")
	assert.Contains(t, buf.String(), "unit=a.cpp")

	buf.Reset()
	NewSlogLogger(&buf, true, true).Info("compiling", "units", 3)
	assert.Contains(t, buf.String(), `"units":3`)
}

type report struct {
	BuildID  string        `json:"build_id" yaml:"build_id"`
	Objects  []string      `json:"objects" yaml:"objects"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

func TestWriteReport(t *testing.T) {
	r := report{BuildID: "b1", Objects: []string{"a.o"}}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, FormatJSON, r, nil))
	assert.Contains(t, buf.String(), `"build_id": "b1"`)

	buf.Reset()
	require.NoError(t, WriteReport(&buf, FormatYAML, r, nil))
	assert.Contains(t, buf.String(), "build_id: b1")
	assert.Contains(t, buf.String(), "- a.o")

	buf.Reset()
	require.NoError(t, WriteReport(&buf, FormatText, r, func(w io.Writer) error {
		_, err := io.WriteString(w, "built b1\n")
		return err
	}))
	assert.Equal(t, "built b1\n", buf.String())

	assert.Error(t, WriteReport(&buf, "xml", r, nil))
	assert.Error(t, ValidateFormat("xml"))
	assert.NoError(t, ValidateFormat(""))
}
