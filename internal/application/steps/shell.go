package steps

import (
	"context"
	"path/filepath"

	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// dotfileNames are the shell configuration files copied from the staged
// dotfiles tree into the user's home.
var dotfileNames = []string{".bashrc", ".bash_profile"}

// ConfigureShellStep installs shell configuration files from the staged
// dotfiles tree, backing up any existing copies, then hands the home
// directory to the user.
type ConfigureShellStep struct {
	fileSystem interfaces.FileSystem
	backup     interfaces.BackupService
	users      interfaces.UserManager
	logger     *logrus.Logger
	userName   string
	stagingDir string
}

// NewConfigureShellStep creates a new ConfigureShellStep.
func NewConfigureShellStep(
	fs interfaces.FileSystem,
	backup interfaces.BackupService,
	users interfaces.UserManager,
	logger *logrus.Logger,
	userName, stagingDir string,
) *ConfigureShellStep {
	return &ConfigureShellStep{
		fileSystem: fs,
		backup:     backup,
		users:      users,
		logger:     logger,
		userName:   userName,
		stagingDir: stagingDir,
	}
}

func (s *ConfigureShellStep) Name() string {
	return "configure-shell"
}

func (s *ConfigureShellStep) Policy() entities.FailurePolicy {
	return entities.PolicyWarn
}

// Run copies staged dotfiles into the home directory and fixes ownership.
func (s *ConfigureShellStep) Run(ctx context.Context) error {
	if !s.fileSystem.Exists(s.stagingDir) {
		s.logger.Debug("No staged dotfiles, skipping shell configuration")
		return nil
	}

	home := "/home/" + s.userName
	copied := 0
	for _, name := range dotfileNames {
		source := filepath.Join(s.stagingDir, name)
		if !s.fileSystem.Exists(source) {
			continue
		}

		content, err := s.fileSystem.ReadFile(source)
		if err != nil {
			s.logger.WithError(err).WithField("file", name).Warn("Cannot read staged dotfile")
			continue
		}

		target := filepath.Join(home, name)
		if _, err := s.backup.Backup(ctx, target); err != nil {
			return err
		}
		if err := s.fileSystem.WriteFile(target, content, 0644); err != nil {
			return errors.NewSystemError("cannot install dotfile "+name, err)
		}
		copied++
	}

	if copied > 0 {
		if err := s.users.ChownRecursive(ctx, s.userName, home); err != nil {
			return err
		}
	}

	s.logger.WithFields(logrus.Fields{
		"user":   s.userName,
		"copied": copied,
	}).Info("Shell configuration installed")
	return nil
}
