package notify

import (
	"log/slog"
	"strings"

	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/logging"
)

// Logging writes every event to a structured logger.
type Logging struct {
	logger *slog.Logger
}

var _ Notifier = (*Logging)(nil)

// NewLogging returns a Logging notifier. A nil logger discards events.
func NewLogging(logger *slog.Logger) *Logging {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Logging{logger: logger}
}

func (l *Logging) TestIgnored(id domain.TestID, reason error) {
	l.logger.Info("test ignored", "test", id.String(), "reason", reason)
}

func (l *Logging) TestStarted(id domain.TestID) {
	l.logger.Debug("test started", "test", id.String())
}

func (l *Logging) TestFailed(id domain.TestID, cause error) {
	l.logger.Error("test failed", "test", id.String(), "error", cause)
}

func (l *Logging) TestFinished(id domain.TestID, outcome domain.Outcome) {
	l.logger.Info("test finished",
		"test", id.String(),
		"result", outcome.Result.String(),
		"duration", outcome.Duration,
		"secondaryFailures", len(outcome.Secondary))
}

func (l *Logging) HookFailed(id domain.TestID, err *domain.HookError) {
	l.logger.Warn("hook failed", "test", id.String(), "hook", string(err.Kind), "error", err.Err)
}

func (l *Logging) GroupFailed(path []string, err *domain.HookError) {
	l.logger.Error("group failed",
		"group", strings.Join(path, domain.PathSeparator),
		"hook", string(err.Kind),
		"error", err.Err)
}
