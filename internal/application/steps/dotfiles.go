package steps

import (
	"context"

	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// FetchDotfilesStep clones the configured dotfiles repository into the
// staging directory, or refreshes an existing clone. Configure-shell later
// copies files out of the staged tree, so this step runs first.
type FetchDotfilesStep struct {
	executor   interfaces.CommandExecutor
	fileSystem interfaces.FileSystem
	logger     *logrus.Logger
	repoURL    string
	stagingDir string
}

// NewFetchDotfilesStep creates a new FetchDotfilesStep.
func NewFetchDotfilesStep(
	executor interfaces.CommandExecutor,
	fs interfaces.FileSystem,
	logger *logrus.Logger,
	repoURL, stagingDir string,
) *FetchDotfilesStep {
	return &FetchDotfilesStep{
		executor:   executor,
		fileSystem: fs,
		logger:     logger,
		repoURL:    repoURL,
		stagingDir: stagingDir,
	}
}

func (s *FetchDotfilesStep) Name() string {
	return "fetch-dotfiles"
}

func (s *FetchDotfilesStep) Policy() entities.FailurePolicy {
	return entities.PolicyWarn
}

// Run clones or refreshes the staged dotfiles tree.
func (s *FetchDotfilesStep) Run(ctx context.Context) error {
	if s.repoURL == "" {
		s.logger.Debug("No dotfiles repository configured, skipping")
		return nil
	}

	if s.fileSystem.Exists(s.stagingDir) {
		if _, err := s.executor.Execute(ctx, "git", "-C", s.stagingDir, "pull", "--ff-only"); err != nil {
			return errors.NewNetworkError("cannot refresh dotfiles clone", err)
		}
		s.logger.WithField("staging_dir", s.stagingDir).Info("Dotfiles refreshed")
		return nil
	}

	if _, err := s.executor.Execute(ctx, "git", "clone", "--depth", "1", s.repoURL, s.stagingDir); err != nil {
		return errors.NewNetworkError("cannot clone dotfiles repository", err)
	}

	s.logger.WithFields(logrus.Fields{
		"repo":        s.repoURL,
		"staging_dir": s.stagingDir,
	}).Info("Dotfiles cloned")
	return nil
}
