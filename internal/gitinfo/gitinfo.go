// Package gitinfo answers questions about the local git repository that
// governs a file: where its root is, which GitHub repository its origin
// points at and what its main branch is called.
package gitinfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// ErrNoOrigin is returned when the repository has no usable origin remote
var ErrNoOrigin = errors.New("repository has no origin remote")

// Repository wraps a local git repository
type Repository struct {
	repo *git.Repository
	root string
}

// Open finds the repository containing path, walking up parent directories
func Open(path string) (*Repository, error) {
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}

	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository for %s: %w", path, err)
	}

	w, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	root, err := filepath.EvalSymlinks(w.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository root: %w", err)
	}

	return &Repository{repo: r, root: root}, nil
}

// Root returns the worktree root directory
func (r *Repository) Root() string {
	return r.root
}

// RelPath returns path relative to the worktree root, with forward slashes
func (r *Repository) RelPath(path string) (string, error) {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside repository %s", path, r.root)
	}
	return filepath.ToSlash(rel), nil
}

// OriginRepo returns the "owner/name" slug of the origin remote
func (r *Repository) OriginRepo() (string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoOrigin, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", ErrNoOrigin
	}

	return ParseRepoSlug(urls[0])
}

// MainBranch returns "main" or "master", whichever exists locally, falling
// back to the branch origin/HEAD points at and then to the checked out branch.
func (r *Repository) MainBranch() (string, error) {
	for _, name := range []string{"main", "master"} {
		if _, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true); err == nil {
			return name, nil
		}
	}

	if ref, err := r.repo.Reference(plumbing.NewRemoteHEADReferenceName("origin"), false); err == nil {
		if ref.Type() == plumbing.SymbolicReference {
			return strings.TrimPrefix(ref.Target().String(), "refs/remotes/origin/"), nil
		}
	}

	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is detached at %s", head.Hash())
	}
	return head.Name().Short(), nil
}

// ParseRepoSlug extracts "owner/name" from a GitHub remote URL. It accepts
// https://host/owner/name(.git), ssh://git@host/owner/name(.git) and
// git@host:owner/name(.git).
func ParseRepoSlug(remoteURL string) (string, error) {
	ep, err := transport.NewEndpoint(strings.TrimSpace(remoteURL))
	if err != nil {
		return "", fmt.Errorf("invalid remote url %q: %w", remoteURL, err)
	}
	if ep.Protocol == "file" {
		return "", fmt.Errorf("remote url %q is a local path", remoteURL)
	}

	path := strings.TrimSuffix(strings.Trim(ep.Path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", fmt.Errorf("invalid remote url %q", remoteURL)
	}

	return parts[len(parts)-2] + "/" + parts[len(parts)-1], nil
}
