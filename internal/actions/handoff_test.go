package actions

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clintrovert/nbactions/internal/event"
	"github.com/clintrovert/nbactions/internal/handoff"
	"github.com/clintrovert/nbactions/pkg/types"
)

const member = "modified_colabs.json"

func workflowRunEvent(t *testing.T) *event.Event {
	t.Helper()
	ev, err := event.Parse([]byte(`{"workflow": {"id": 1}, "workflow_run": {"id": 900}}`))
	require.NoError(t, err)
	return ev
}

func archiveOf(t *testing.T, rec handoff.Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(member)
	require.NoError(t, err)
	require.NoError(t, handoff.Encode(w, rec))
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestPostHandoffCreatesComment(t *testing.T) {
	api := newFakeAPI()
	api.artifacts[900] = []types.Artifact{{ID: 5, Name: "pr"}, {ID: 6, Name: "other"}}
	api.archives[5] = archiveOf(t, handoff.Record{Version: handoff.Version, PR: 12, CommentID: types.NoComment, Body: "links"})
	a := New(api, zap.NewNop())

	result, err := a.PostHandoff(context.Background(), workflowRunEvent(t), member)
	require.NoError(t, err)

	assert.True(t, result.Written)
	assert.Equal(t, types.CommentTarget{Number: 12, CommentID: 1001}, result.Target)
	assert.Equal(t, []call{{Method: "CreateComment", Number: 12, Body: "links"}}, api.writes())
}

func TestPostHandoffUpdatesComment(t *testing.T) {
	api := newFakeAPI()
	api.artifacts[900] = []types.Artifact{{ID: 5, Name: "pr"}}
	api.archives[5] = archiveOf(t, handoff.Record{Version: handoff.Version, PR: 12, CommentID: 44, Body: "links"})
	a := New(api, zap.NewNop())

	_, err := a.PostHandoff(context.Background(), workflowRunEvent(t), member)
	require.NoError(t, err)

	assert.Equal(t, []call{{Method: "UpdateComment", CommentID: 44, Body: "links"}}, api.writes())
}

func TestPostHandoffFailures(t *testing.T) {
	t.Run("no artifacts", func(t *testing.T) {
		api := newFakeAPI()
		_, err := New(api, zap.NewNop()).PostHandoff(context.Background(), workflowRunEvent(t), member)
		assert.ErrorIs(t, err, ErrNoArtifacts)
		assert.Empty(t, api.writes())
	})

	t.Run("missing member", func(t *testing.T) {
		api := newFakeAPI()
		api.artifacts[900] = []types.Artifact{{ID: 5}}
		api.archives[5] = archiveOf(t, handoff.Record{Version: handoff.Version, PR: 1})
		_, err := New(api, zap.NewNop()).PostHandoff(context.Background(), workflowRunEvent(t), "other.json")
		assert.ErrorIs(t, err, handoff.ErrMemberNotFound)
		assert.Empty(t, api.writes())
	})

	t.Run("download fails", func(t *testing.T) {
		api := newFakeAPI()
		api.artifacts[900] = []types.Artifact{{ID: 5}}
		_, err := New(api, zap.NewNop()).PostHandoff(context.Background(), workflowRunEvent(t), member)
		assert.ErrorIs(t, err, errNotFound)
	})

	t.Run("not a workflow run", func(t *testing.T) {
		api := newFakeAPI()
		_, err := New(api, zap.NewNop()).PostHandoff(context.Background(), pullRequestEvent(t, 3), member)
		assert.ErrorIs(t, err, event.ErrNoWorkflowRun)
		assert.Empty(t, api.calls)
	})
}
