package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"bsdsetup/internal/domain/constants"
	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// FileBackupService copies prior versions of generated config files into a
// backup directory with a timestamp suffix before they are overwritten.
type FileBackupService struct {
	fileSystem interfaces.FileSystem
	clock      interfaces.Clock
	logger     *logrus.Logger
	backupDir  string
}

// NewFileBackupService creates a new FileBackupService.
func NewFileBackupService(
	fs interfaces.FileSystem,
	clock interfaces.Clock,
	logger *logrus.Logger,
	backupDir string,
) interfaces.BackupService {
	return &FileBackupService{
		fileSystem: fs,
		clock:      clock,
		logger:     logger,
		backupDir:  backupDir,
	}
}

// Backup preserves the current content of path. A missing original means
// there is nothing to preserve and is not an error. The backup file name is
// derived from the original (e.g. pf.conf -> pf_20250108_150405.conf).
func (s *FileBackupService) Backup(ctx context.Context, path string) (string, error) {
	if !s.fileSystem.Exists(path) {
		s.logger.WithField("path", path).Debug("No existing file to back up")
		return "", nil
	}

	if err := s.fileSystem.MkdirAll(s.backupDir, constants.BackupDirPermission); err != nil {
		return "", errors.NewSystemError("cannot create backup directory", err)
	}

	content, err := s.fileSystem.ReadFile(path)
	if err != nil {
		return "", errors.NewSystemError("cannot read file for backup", err)
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	timestamp := s.clock.Now().Format("20060102_150405")
	backupPath := filepath.Join(s.backupDir, fmt.Sprintf("%s_%s%s", base, timestamp, ext))

	if err := s.fileSystem.WriteFile(backupPath, content, 0600); err != nil {
		return "", errors.NewSystemError("cannot write backup file", err)
	}

	s.logger.WithFields(logrus.Fields{
		"path":        path,
		"backup_path": backupPath,
	}).Info("Config backup created")

	return backupPath, nil
}
