package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Progress reports compile progress in the form [N/M] unit. It is safe for
// concurrent use by compile workers.
type Progress struct {
	mu       sync.Mutex
	out      io.Writer
	total    int
	current  int
	jsonMode bool
}

// NewProgress creates a Progress for total steps writing to out.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// SetJSONMode enables JSON output mode (suppresses text output).
func (p *Progress) SetJSONMode(jsonMode bool) {
	p.mu.Lock()
	p.jsonMode = jsonMode
	p.mu.Unlock()
}

// SetTotal changes the number of expected steps.
func (p *Progress) SetTotal(total int) {
	p.mu.Lock()
	p.total = total
	p.mu.Unlock()
}

// Step records one finished step and prints it.
func (p *Progress) Step(description string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current++
	if p.jsonMode {
		return
	}
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(p.out, "[%d/%d] ", p.current, p.total)
	fmt.Fprintln(p.out, description)
}

// Current returns the number of recorded steps.
func (p *Progress) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
