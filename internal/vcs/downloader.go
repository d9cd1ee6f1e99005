// Package vcs retrieves git-sourced dependencies into the build directory
// so the compiler can read them like any other package. Every step is
// idempotent: an existing clone is reused, a checkout already detached at
// the wanted revision is a no-op, and the network is only touched when the
// wanted revision is locally unknown.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gleamls/internal/manifest"
)

// Downloader fetches git packages into a packages directory.
type Downloader struct {
	packagesDir string
	log         *zap.Logger
}

// NewDownloader creates a downloader writing under packagesDir.
func NewDownloader(packagesDir string, log *zap.Logger) *Downloader {
	return &Downloader{packagesDir: packagesDir, log: log}
}

// EnsureAvailable makes sure the named package exists locally, cloned from
// repoURL and, when revision is set, checked out detached at it. It reports
// whether anything had to change.
func (d *Downloader) EnsureAvailable(ctx context.Context, name, repoURL, revision string) (bool, error) {
	path := filepath.Join(d.packagesDir, name)

	repo, cloned, err := d.openOrClone(ctx, name, repoURL, path)
	if err != nil {
		return false, err
	}
	if revision == "" {
		return cloned, nil
	}

	checkedOut, err := d.checkoutRevision(ctx, repo, name, revision)
	if err != nil {
		return false, err
	}
	return cloned || checkedOut, nil
}

func (d *Downloader) openOrClone(ctx context.Context, name, repoURL, path string) (*git.Repository, bool, error) {
	repo, err := git.PlainOpen(path)
	if err == nil {
		d.log.Info("git package already in build directory",
			zap.String("package", name), zap.String("repo", repoURL))
		return repo, false, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, false, fmt.Errorf("failed to open package repository %s: %w", name, err)
	}

	d.log.Info("cloning git package to build directory",
		zap.String("package", name), zap.String("repo", repoURL))

	repo, err = git.PlainCloneContext(ctx, path, false, &git.CloneOptions{URL: repoURL})
	if err != nil {
		return nil, false, fmt.Errorf("failed to clone %s from %s: %w", name, repoURL, err)
	}
	return repo, true, nil
}

func (d *Downloader) checkoutRevision(ctx context.Context, repo *git.Repository, name, revision string) (bool, error) {
	hash := plumbing.NewHash(revision)

	if head, err := repo.Head(); err == nil && head.Hash() == hash {
		return false, nil
	}

	if _, err := repo.CommitObject(hash); err != nil {
		// Possibly an outdated clone which isn't yet aware of the wanted
		// revision, so fetch from the origin just in case.
		d.log.Info("fetching git package repository", zap.String("package", name))
		if err := repo.FetchContext(ctx, &git.FetchOptions{}); err != nil &&
			!errors.Is(err, git.NoErrAlreadyUpToDate) {
			return false, fmt.Errorf("failed to fetch %s: %w", name, err)
		}
	}

	d.log.Info("checking out git package repository",
		zap.String("package", name), zap.String("revision", revision))

	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to open worktree of %s: %w", name, err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: hash}); err != nil {
		return false, fmt.Errorf("failed to check out %s at %s: %w", name, revision, err)
	}
	return true, nil
}

// DownloadGitPackages fetches every git-sourced package concurrently. All
// fetches run to completion; the first error is returned and already
// fetched siblings are left in place.
func (d *Downloader) DownloadGitPackages(ctx context.Context, packages []manifest.Package, projectName string) error {
	var group errgroup.Group
	for _, pkg := range packages {
		if pkg.Name == projectName {
			continue
		}

		group.Go(func() error {
			_, err := d.EnsureAvailable(ctx, pkg.Name, pkg.Repo, pkg.Revision)
			return err
		})
	}
	return group.Wait()
}
