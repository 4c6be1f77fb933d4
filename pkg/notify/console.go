package notify

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/specvital/spectree/pkg/domain"
)

const (
	markPassed  = "✓"
	markFailed  = "✗"
	markIgnored = "-"
	markWarning = "!"
)

// Console streams one line per finished or ignored test, indented by group depth.
type Console struct {
	w     io.Writer
	color bool
}

var _ Notifier = (*Console)(nil)

// NewConsole returns a Console writing to w. With color set, lines are colored by result.
func NewConsole(w io.Writer, color bool) *Console {
	return &Console{w: w, color: color}
}

func (c *Console) TestIgnored(id domain.TestID, reason error) {
	c.line(len(id.Path), text.FgYellow, "%s %s (%v)", markIgnored, id.Name, reason)
}

func (c *Console) TestStarted(domain.TestID) {}

func (c *Console) TestFailed(id domain.TestID, cause error) {
	c.line(len(id.Path)+1, text.FgRed, "%v", cause)
}

func (c *Console) TestFinished(id domain.TestID, outcome domain.Outcome) {
	switch outcome.Result {
	case domain.ResultPassed:
		c.line(len(id.Path), text.FgGreen, "%s %s (%s)", markPassed, id.Name, round(outcome.Duration))
	case domain.ResultSkipped:
		c.line(len(id.Path), text.FgYellow, "%s %s", markIgnored, id.Name)
	default:
		c.line(len(id.Path), text.FgRed, "%s %s (%s)", markFailed, id.Name, round(outcome.Duration))
	}
}

func (c *Console) HookFailed(id domain.TestID, err *domain.HookError) {
	c.line(len(id.Path)+1, text.FgHiYellow, "%s %v", markWarning, err)
}

func (c *Console) GroupFailed(path []string, err *domain.HookError) {
	c.line(len(path), text.FgRed, "%s %s: %v", markFailed, strings.Join(path, domain.PathSeparator), err)
}

func (c *Console) line(depth int, color text.Color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.color {
		msg = color.Sprint(msg)
	}
	fmt.Fprintf(c.w, "%s%s\n", strings.Repeat("  ", depth), msg)
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Microsecond)
}
