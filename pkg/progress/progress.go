// Package progress renders a single-line terminal progress bar.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Bar is an ASCII progress bar redrawn in place with a carriage return.
// It is safe for concurrent use.
type Bar struct {
	out         io.Writer
	current     int
	total       int
	width       int
	enableColor bool
	started     time.Time
	mu          sync.Mutex
}

// NewBar creates a progress bar writing to out.
func NewBar(out io.Writer, width int, enableColor bool) *Bar {
	if width < 1 {
		width = 40
	}
	return &Bar{out: out, width: width, enableColor: enableColor}
}

// ForTerminal returns a bar on f when f is a terminal, and nil otherwise.
func ForTerminal(f *os.File) *Bar {
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return nil
	}
	return NewBar(f, 40, !color.NoColor)
}

// Start resets the bar for total steps and draws it.
func (b *Bar) Start(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total = total
	b.current = 0
	b.started = time.Now()
	b.draw("")
}

// Increment advances the bar by one step.
func (b *Bar) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current++
	b.draw("")
}

// Finish draws the final state followed by message and a newline.
func (b *Bar) Finish(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draw(message)
	fmt.Fprintln(b.out)
}

// Percentage returns the progress percentage (0-100).
func (b *Bar) Percentage() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.percentage()
}

func (b *Bar) percentage() int {
	if b.total <= 0 {
		return 0
	}
	perc := (b.current * 100) / b.total
	if perc > 100 {
		perc = 100
	}
	if perc < 0 {
		perc = 0
	}
	return perc
}

// Render returns the bar as a string without writing it.
func (b *Bar) Render() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.render("")
}

func (b *Bar) render(message string) string {
	perc := b.percentage()
	filled := (perc * b.width) / 100

	bar := "[" + strings.Repeat("=", filled)
	if filled < b.width {
		bar += ">" + strings.Repeat("-", b.width-filled-1)
	}
	bar += "]"

	elapsed := time.Duration(0)
	if !b.started.IsZero() {
		elapsed = time.Since(b.started).Truncate(time.Second)
	}
	result := fmt.Sprintf("[%s] %s %d/%d (%d%%)", elapsed, bar, b.current, b.total, perc)
	if message != "" {
		result = message + " " + result
	}

	if b.enableColor {
		if perc < 100 {
			return color.CyanString(result)
		}
		return color.GreenString(result)
	}
	return result
}

func (b *Bar) draw(message string) {
	fmt.Fprintf(b.out, "\r%s", b.render(message))
}
