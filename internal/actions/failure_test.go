package actions

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// notebookRepo creates a checkout of wandb/examples on main holding
// nbs/01_core.ipynb and returns its resolved root.
func notebookRepo(t *testing.T) string {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	r, err := git.PlainInitWithOptions(root, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	require.NoError(t, err)
	_, err = r.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{"git@github.com:wandb/examples.git"}})
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "nbs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nbs", "01_core.ipynb"), []byte("{}"), 0o644))

	w, err := r.Worktree()
	require.NoError(t, err)
	_, err = w.Add("nbs/01_core.ipynb")
	require.NoError(t, err)
	_, err = w.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return root
}

func TestFailureBody(t *testing.T) {
	body := FailureBody("nbs/01_core.ipynb", "main", "wandb/examples", "ValueError: x")

	want := "The following notebooks failed to run:\n\n" +
		"|notebook name|               |\n" +
		"|-------------|---------------|\n" +
		"| [nbs/01_core.ipynb](https://github.com/wandb/examples/blob/main/nbs/01_core.ipynb)   | " +
		"[![badge](https://colab.research.google.com/assets/colab-badge.svg)](https://colab.research.google.com/github/wandb/examples/blob/main/nbs/01_core.ipynb) |\n\n" +
		"------------------------------\n" +
		"The recovered traceback is:\n\n" +
		"```python\nValueError: x\n```"
	assert.Equal(t, want, body)
}

func TestFailureBodyWithoutTraceback(t *testing.T) {
	body := FailureBody("a.ipynb", "main", "o/r", "")
	assert.Contains(t, body, "```python\n\n```")
}

func TestReportFailure(t *testing.T) {
	root := notebookRepo(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	api := newFakeAPI()
	a := New(api, zap.NewNop())

	info, err := a.ReportFailure(context.Background(), "nbs/01_core.ipynb", "ValueError: x")
	require.NoError(t, err)
	assert.Equal(t, 77, info.Number)

	writes := api.writes()
	require.Len(t, writes, 1)
	issue := writes[0]

	abs := filepath.Join(root, "nbs", "01_core.ipynb")
	assert.Equal(t, "CreateIssue", issue.Method)
	assert.Equal(t, "Failed to run "+abs, issue.Title)
	assert.Equal(t, []string{"bug"}, issue.Labels)
	assert.Contains(t, issue.Body, "```python\nValueError: x\n```")
	assert.Contains(t, issue.Body, "https://colab.research.google.com/github/wandb/examples/blob/main/nbs/01_core.ipynb")
}

func TestReportFailureCreatesIssueEveryTime(t *testing.T) {
	root := notebookRepo(t)
	nb := filepath.Join(root, "nbs", "01_core.ipynb")

	api := newFakeAPI()
	a := New(api, zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err := a.ReportFailure(context.Background(), nb, "")
		require.NoError(t, err)
	}
	assert.Len(t, api.writes(), 2)
}

func TestReportFailureOutsideRepository(t *testing.T) {
	api := newFakeAPI()
	_, err := New(api, zap.NewNop()).ReportFailure(context.Background(), filepath.Join(t.TempDir(), "x.ipynb"), "")

	assert.Error(t, err)
	assert.Empty(t, api.writes())
}
