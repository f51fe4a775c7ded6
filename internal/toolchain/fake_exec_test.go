package toolchain

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"
)

type execCall struct {
	name string
	args []string
}

// fakeExec records invocations and creates the files a real compiler or
// linker would write, so existence checks behave as in production.
type fakeExec struct {
	mu    sync.Mutex
	calls []execCall

	delay time.Duration
	fail  func(name string, args []string) bool
}

func (f *fakeExec) Execute(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, execCall{name: name, args: append([]string{}, args...)})
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.fail != nil && f.fail(name, args) {
		return []byte("error: boom\n"), errors.New("exit status 1")
	}
	for _, out := range outputsOf(args) {
		if err := os.WriteFile(out, []byte(name), 0644); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (f *fakeExec) Calls() []execCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]execCall{}, f.calls...)
}

// CallsMatching counts invocations whose arguments contain substr.
func (f *fakeExec) CallsMatching(substr string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.Contains(strings.Join(c.args, " "), substr) {
			n++
		}
	}
	return n
}

func outputsOf(args []string) []string {
	var outs []string
	for i, a := range args {
		switch {
		case (a == "-o" || a == "/ifcOutput") && i+1 < len(args):
			outs = append(outs, args[i+1])
		case strings.HasPrefix(a, "/Fo"):
			outs = append(outs, strings.TrimPrefix(a, "/Fo"))
		case strings.HasPrefix(a, "/OUT:"):
			outs = append(outs, strings.TrimPrefix(a, "/OUT:"))
		}
	}
	return outs
}
