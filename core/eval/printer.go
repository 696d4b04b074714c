package eval

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Printer serializes writes from the interpreter, its background jobs and
// their watchers onto one writer.
type Printer struct {
	mu sync.Mutex
	w  io.Writer

	jobColor   *color.Color
	errorColor *color.Color
}

// NewPrinter creates a Printer writing to w, colorizing notices when
// colorize is set.
func NewPrinter(w io.Writer, colorize bool) *Printer {
	p := &Printer{
		w:          w,
		jobColor:   color.New(color.FgCyan),
		errorColor: color.New(color.FgRed, color.Bold),
	}

	for _, c := range []*color.Color{p.jobColor, p.errorColor} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Write implements io.Writer.
func (p *Printer) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.w.Write(b)
}

// SetOutput redirects subsequent writes to w.
func (p *Printer) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.w = w
}

// Println writes the operands followed by a newline in a single write.
func (p *Printer) Println(a ...interface{}) {
	fmt.Fprint(p, fmt.Sprintln(a...))
}

// JobStarted announces a background job.
func (p *Printer) JobStarted(pid int) {
	p.Println(p.jobColor.Sprintf("  + %d", pid))
}

// JobDone announces that a background job's process exited.
func (p *Printer) JobDone(pid int) {
	p.Println(p.jobColor.Sprintf("  + %d done", pid))
}

// Error reports a failed line.
func (p *Printer) Error(err error) {
	p.Println(p.errorColor.Sprintf("error: %v", err))
}
