package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/optionbook/internal/logfields"
	"git.home.luguber.info/inful/optionbook/internal/retry"
)

// Repository is a remote catalog to clone.
type Repository struct {
	URL    string
	Branch string
	// Depth limits history; 0 clones everything.
	Depth int
	// Name is the checkout directory below the workspace.
	Name string
	// Retry governs re-attempts after transient failures.
	Retry retry.Policy
}

// Client clones repositories below a workspace directory.
type Client struct {
	workspaceDir string
}

// NewClient creates a new Git client with the specified workspace directory.
func NewClient(workspaceDir string) *Client { return &Client{workspaceDir: workspaceDir} }

// Clone performs a fresh clone and returns the checkout path.
func (c *Client) Clone(ctx context.Context, repo Repository) (string, error) {
	name := repo.Name
	if name == "" {
		name = "catalog"
	}
	repoPath := filepath.Join(c.workspaceDir, name)
	return withRetry(ctx, "clone", repo.URL, repo.Retry, func() (string, error) {
		return c.clone(ctx, repo, repoPath)
	})
}

func (c *Client) clone(ctx context.Context, repo Repository, repoPath string) (string, error) {
	slog.Debug("Cloning repository", logfields.URL(repo.URL), slog.String("branch", repo.Branch), logfields.Path(repoPath))
	if err := os.RemoveAll(repoPath); err != nil {
		return "", fmt.Errorf("failed to remove existing directory: %w", err)
	}

	opts := &git.CloneOptions{URL: repo.URL, Depth: repo.Depth}
	if repo.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(repo.Branch)
		opts.SingleBranch = true
	}
	repository, err := git.PlainCloneContext(ctx, repoPath, false, opts)
	if err != nil {
		return "", classifyCloneError(repo.URL, err)
	}
	if ref, herr := repository.Head(); herr == nil {
		slog.Info("Repository cloned", logfields.URL(repo.URL), slog.String("commit", ref.Hash().String()[:8]), logfields.Path(repoPath))
	} else {
		slog.Info("Repository cloned", logfields.URL(repo.URL), logfields.Path(repoPath))
	}
	return repoPath, nil
}
