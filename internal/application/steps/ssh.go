package steps

import (
	"bytes"
	"context"
	"text/template"

	"bsdsetup/internal/domain/constants"
	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// sshdTemplate is the hardened daemon configuration. Root logins are
// always disabled; password authentication is an explicit policy choice
// carried in from configuration.
const sshdTemplate = `# Generated by bsdsetup. Manual edits will be overwritten on the next run.
Protocol 2
Port 22

PermitRootLogin no
PasswordAuthentication {{ if .PasswordAuthentication }}yes{{ else }}no{{ end }}
KbdInteractiveAuthentication no
PermitEmptyPasswords no
PubkeyAuthentication yes

MaxAuthTries 4
LoginGraceTime 30
ClientAliveInterval 300
ClientAliveCountMax 2

X11Forwarding no
AllowAgentForwarding no
AllowTcpForwarding yes

Subsystem sftp /usr/libexec/sftp-server
`

// HardenSSHStep renders the hardened sshd_config, backs up the previous
// version, and restarts sshd. A failed restart is fatal: it would leave
// the host with a dead or stale SSH daemon.
type HardenSSHStep struct {
	fileSystem interfaces.FileSystem
	backup     interfaces.BackupService
	services   interfaces.ServiceManager
	logger     *logrus.Logger

	configPath             string
	passwordAuthentication bool
}

// NewHardenSSHStep creates a new HardenSSHStep.
func NewHardenSSHStep(
	fs interfaces.FileSystem,
	backup interfaces.BackupService,
	services interfaces.ServiceManager,
	logger *logrus.Logger,
	configPath string,
	passwordAuthentication bool,
) *HardenSSHStep {
	return &HardenSSHStep{
		fileSystem:             fs,
		backup:                 backup,
		services:               services,
		logger:                 logger,
		configPath:             configPath,
		passwordAuthentication: passwordAuthentication,
	}
}

func (s *HardenSSHStep) Name() string {
	return "harden-ssh"
}

func (s *HardenSSHStep) Policy() entities.FailurePolicy {
	return entities.PolicyFatal
}

// Run writes the hardened configuration and restarts the daemon.
func (s *HardenSSHStep) Run(ctx context.Context) error {
	content, err := s.render()
	if err != nil {
		return err
	}

	// Unchanged config skips the rewrite, but the daemon must still end
	// up enabled and running.
	if s.fileSystem.Exists(s.configPath) {
		current, readErr := s.fileSystem.ReadFile(s.configPath)
		if readErr == nil && bytes.Equal(current, content) {
			s.logger.Debug("sshd_config already hardened, skipping restart")
			if err := s.services.Enable(ctx, constants.ServiceSSHD); err != nil {
				return err
			}
			if s.services.IsRunning(ctx, constants.ServiceSSHD) {
				return nil
			}
			if err := s.services.Start(ctx, constants.ServiceSSHD); err != nil {
				return errors.NewSystemError("cannot start sshd", err)
			}
			return nil
		}
	}

	if _, err := s.backup.Backup(ctx, s.configPath); err != nil {
		return err
	}

	if err := s.fileSystem.WriteFile(s.configPath, content, constants.ConfigFilePermission); err != nil {
		return errors.NewSystemError("cannot write sshd_config", err)
	}

	if err := s.services.Enable(ctx, constants.ServiceSSHD); err != nil {
		return err
	}

	if err := s.services.Restart(ctx, constants.ServiceSSHD); err != nil {
		return errors.NewSystemError("sshd restart failed after config change", err)
	}

	s.logger.WithFields(logrus.Fields{
		"path":          s.configPath,
		"password_auth": s.passwordAuthentication,
	}).Info("SSH daemon hardened")
	return nil
}

func (s *HardenSSHStep) render() ([]byte, error) {
	tmpl, err := template.New("sshd_config").Parse(sshdTemplate)
	if err != nil {
		return nil, errors.NewSystemError("cannot parse sshd_config template", err)
	}

	var buf bytes.Buffer
	data := struct{ PasswordAuthentication bool }{s.passwordAuthentication}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.NewSystemError("cannot render sshd_config template", err)
	}

	return buf.Bytes(), nil
}
