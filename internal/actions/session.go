package actions

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/clintrovert/nbactions/internal/config"
	"github.com/clintrovert/nbactions/internal/event"
	"github.com/clintrovert/nbactions/internal/github"
)

// ErrNoEvent is returned when a pipeline needs an event payload but none was configured
var ErrNoEvent = errors.New("no event payload: GITHUB_EVENT_PATH is not set")

// Session is an authenticated client together with the triggering event
type Session struct {
	Client *github.Client
	Event  *event.Event
}

// NewSession authenticates against the configured repository and loads the
// event payload when one is configured. A missing token is fatal.
func NewSession(cfg *config.Config, logger *zap.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := github.NewClient(cfg.Token, cfg.APIURL, cfg.Repository(), logger)
	if err != nil {
		return nil, err
	}

	s := &Session{Client: client}
	if cfg.EventPath != "" {
		ev, err := event.Load(cfg.EventPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load event: %w", err)
		}
		s.Event = ev
	}

	logger.Debug("session ready",
		zap.String("repo", cfg.Repository().FullName()),
		zap.Bool("has_event", s.Event != nil),
	)

	return s, nil
}

// RequireEvent returns the session's event or ErrNoEvent
func (s *Session) RequireEvent() (*event.Event, error) {
	if s.Event == nil {
		return nil, ErrNoEvent
	}
	return s.Event, nil
}
