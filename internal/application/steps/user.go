package steps

import (
	"context"
	"fmt"
	"strings"

	"bsdsetup/internal/domain/constants"
	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// CreateUserStep ensures the provisioned account exists with its login
// shell registered in /etc/shells. An already-existing account is left
// untouched, so re-running the pipeline never duplicates or resets it.
// Fatal: later steps chown files to this account.
type CreateUserStep struct {
	users      interfaces.UserManager
	fileSystem interfaces.FileSystem
	backup     interfaces.BackupService
	logger     *logrus.Logger

	userName        string
	shell           string
	initialPassword string
}

// NewCreateUserStep creates a new CreateUserStep.
func NewCreateUserStep(
	users interfaces.UserManager,
	fs interfaces.FileSystem,
	backup interfaces.BackupService,
	logger *logrus.Logger,
	userName, shell, initialPassword string,
) *CreateUserStep {
	return &CreateUserStep{
		users:           users,
		fileSystem:      fs,
		backup:          backup,
		logger:          logger,
		userName:        userName,
		shell:           shell,
		initialPassword: initialPassword,
	}
}

func (s *CreateUserStep) Name() string {
	return "create-user"
}

func (s *CreateUserStep) Policy() entities.FailurePolicy {
	return entities.PolicyFatal
}

// Run creates the account when absent and registers its shell.
func (s *CreateUserStep) Run(ctx context.Context) error {
	if err := s.ensureShellRegistered(ctx); err != nil {
		return err
	}

	if s.users.Exists(ctx, s.userName) {
		s.logger.WithField("user", s.userName).Info("User already exists, leaving untouched")
		return nil
	}

	home := "/home/" + s.userName
	if err := s.users.Create(ctx, s.userName, s.shell, home); err != nil {
		return err
	}

	// Only ever set on first creation, and only when the operator opted
	// in. Never resets an existing account's password.
	if s.initialPassword != "" {
		if err := s.users.SetPassword(ctx, s.userName, s.initialPassword); err != nil {
			return err
		}
	}

	return nil
}

// ensureShellRegistered appends the login shell to /etc/shells when it is
// not already listed.
func (s *CreateUserStep) ensureShellRegistered(ctx context.Context) error {
	var lines []string
	if s.fileSystem.Exists(constants.ShellsPath) {
		content, err := s.fileSystem.ReadFile(constants.ShellsPath)
		if err != nil {
			return errors.NewSystemError("cannot read /etc/shells", err)
		}
		lines = strings.Split(strings.TrimRight(string(content), "\n"), "\n")
		for _, line := range lines {
			if strings.TrimSpace(line) == s.shell {
				return nil
			}
		}
	}

	if _, err := s.backup.Backup(ctx, constants.ShellsPath); err != nil {
		return err
	}

	lines = append(lines, s.shell)
	updated := strings.Join(lines, "\n") + "\n"
	if err := s.fileSystem.WriteFile(constants.ShellsPath, []byte(updated), constants.ConfigFilePermission); err != nil {
		return errors.NewSystemError(fmt.Sprintf("cannot register shell %s", s.shell), err)
	}

	s.logger.WithField("shell", s.shell).Info("Login shell registered in /etc/shells")
	return nil
}
