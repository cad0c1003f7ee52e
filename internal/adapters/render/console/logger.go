// Package console writes session logs as styled lines on a writer. Every
// line carries the timestamp and the session name so interleaved runs of
// several accounts stay readable.
package console

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bnema/hamster-tapper-cli/internal/ports"
)

type Logger struct {
	out     io.Writer
	session string
	now     func() time.Time
	styles  styles
	mu      sync.Mutex
}

var _ ports.Logger = (*Logger)(nil)

func NewLogger(out io.Writer, session string) *Logger {
	return &Logger{
		out:     out,
		session: session,
		now:     time.Now,
		styles:  newStyles(),
	}
}

func (l *Logger) Success(format string, args ...any) {
	l.write(l.styles.success.Render("SUCCESS"), format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.write(l.styles.info.Render("INFO"), format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.write(l.styles.warn.Render("WARNING"), format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.write(l.styles.err.Render("ERROR"), format, args...)
}

func (l *Logger) write(level string, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.out, "%s | %s | %s | %s\n",
		l.styles.timestamp.Render(l.now().Format("2006-01-02 15:04:05")),
		level,
		l.styles.session.Render(l.session),
		fmt.Sprintf(format, args...),
	)
}
