// Package webhook serves a GitHub webhook endpoint that posts notebook links
// on pull requests as they are opened or pushed to.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"

	"github.com/clintrovert/nbactions/internal/actions"
	"github.com/clintrovert/nbactions/internal/event"
	"github.com/clintrovert/nbactions/pkg/types"
)

const maxPayloadBytes = 25 << 20

// LinkPoster posts the notebook links comment for an event
type LinkPoster interface {
	PostNotebookLinks(ctx context.Context, ev *event.Event) (*actions.CommentResult, error)
}

// Handler handles webhook deliveries
type Handler struct {
	poster LinkPoster
	repo   types.RepositoryInfo
	secret []byte
	logger *zap.Logger
}

// NewHandler creates a new webhook handler for deliveries about repo.
// Signatures are checked when secret is non-empty.
func NewHandler(poster LinkPoster, repo types.RepositoryInfo, secret string, logger *zap.Logger) *Handler {
	return &Handler{
		poster: poster,
		repo:   repo,
		secret: []byte(secret),
		logger: logger,
	}
}

// DeliveryResponse is returned for handled pull_request deliveries
type DeliveryResponse struct {
	PRNumber  int   `json:"pr_number"`
	Notebooks int   `json:"notebooks"`
	CommentID int64 `json:"comment_id,omitempty"`
	Written   bool  `json:"written"`
}

// RegisterRoutes mounts the handler on r
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/webhook", h.HandleWebhook)
}

// HandleWebhook handles POST /webhook
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := h.readPayload(w, r)
	if err != nil {
		status := http.StatusUnauthorized
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.logger.Warn("rejected webhook delivery", zap.Int("status", status), zap.Error(err))
		http.Error(w, err.Error(), status)
		return
	}

	eventType := github.WebHookType(r)
	parsed, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		h.logger.Debug("ignoring webhook delivery", zap.String("event", eventType), zap.Error(err))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	prEvent, ok := parsed.(*github.PullRequestEvent)
	if !ok || !relevantAction(prEvent.GetAction()) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// Comments are written to the bound repository, so deliveries about any
	// other repository are ignored.
	if fullName := prEvent.GetRepo().GetFullName(); !strings.EqualFold(fullName, h.repo.FullName()) {
		h.logger.Debug("ignoring delivery for another repository",
			zap.String("delivery_repo", fullName),
			zap.String("repo", h.repo.FullName()),
		)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	ev := event.FromPullRequestEvent(prEvent)
	h.logger.Info("handling pull request delivery",
		zap.String("delivery_id", github.DeliveryID(r)),
		zap.String("action", prEvent.GetAction()),
		zap.Int("pr_number", ev.Number),
	)

	result, err := h.poster.PostNotebookLinks(r.Context(), ev)
	if err != nil {
		h.logger.Error("failed to post notebook links", zap.Int("pr_number", ev.Number), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	resp := DeliveryResponse{
		PRNumber:  ev.Number,
		Notebooks: len(result.Notebooks),
		Written:   result.Written,
	}
	if result.Written {
		resp.CommentID = result.Target.CommentID
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) readPayload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPayloadBytes)
	if len(h.secret) == 0 {
		return io.ReadAll(r.Body)
	}
	return github.ValidatePayload(r, h.secret)
}

func relevantAction(action string) bool {
	switch action {
	case "opened", "reopened", "synchronize":
		return true
	default:
		return false
	}
}
