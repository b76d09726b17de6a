package firewall

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"text/template"

	"bsdsetup/internal/domain/constants"
	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// pfTemplate is the fixed ruleset policy: default-deny inbound, allow all
// outbound, skip loopback, stateful inbound allow-lists scoped to the
// external interface.
const pfTemplate = `# Generated by bsdsetup. Manual edits will be overwritten on the next run.
ext_if = "{{ .Interface }}"

set block-policy drop
set skip on lo0

block in all
pass out all keep state

pass in on $ext_if inet proto tcp to ($ext_if) port { {{ .TCPPorts }} } keep state
{{- if .UDPPorts }}
pass in on $ext_if inet proto udp to ($ext_if) port { {{ .UDPPorts }} } keep state
{{- end }}
`

// PFConfigurator renders pf.conf for the detected external interface and
// brings the pf service into a running state with the new ruleset.
type PFConfigurator struct {
	fileSystem interfaces.FileSystem
	backup     interfaces.BackupService
	services   interfaces.ServiceManager
	executor   interfaces.CommandExecutor
	logger     *logrus.Logger
	configPath string
}

// NewPFConfigurator creates a new PFConfigurator.
func NewPFConfigurator(
	fs interfaces.FileSystem,
	backup interfaces.BackupService,
	services interfaces.ServiceManager,
	executor interfaces.CommandExecutor,
	logger *logrus.Logger,
	configPath string,
) *PFConfigurator {
	return &PFConfigurator{
		fileSystem: fs,
		backup:     backup,
		services:   services,
		executor:   executor,
		logger:     logger,
		configPath: configPath,
	}
}

// Configure renders and writes pf.conf. The prior version, if any, is
// backed up first. An invalid policy (empty interface included) writes
// nothing.
func (c *PFConfigurator) Configure(ctx context.Context, policy entities.FirewallPolicy) error {
	if err := policy.Validate(); err != nil {
		return errors.NewValidationError("refusing to render firewall ruleset", err)
	}

	content, err := c.render(policy)
	if err != nil {
		return err
	}

	if _, err := c.backup.Backup(ctx, c.configPath); err != nil {
		return err
	}

	if err := c.fileSystem.WriteFile(c.configPath, content, constants.ConfigFilePermission); err != nil {
		return errors.NewSystemError("cannot write pf.conf", err)
	}

	c.logger.WithFields(logrus.Fields{
		"path":      c.configPath,
		"interface": policy.Interface.String(),
	}).Info("Firewall ruleset written")

	return nil
}

// Activate brings pf into a running state with the ruleset on disk.
// A cold start that fails is an error (no firewall is an unsafe state);
// a failed reload of an already-running pf only warns, since the previous
// ruleset remains active.
func (c *PFConfigurator) Activate(ctx context.Context) error {
	if err := c.services.Enable(ctx, constants.ServicePF); err != nil {
		return err
	}

	if c.services.IsRunning(ctx, constants.ServicePF) {
		if _, err := c.executor.Execute(ctx, "pfctl", "-f", c.configPath); err != nil {
			c.logger.WithError(err).Warn("pf ruleset reload failed, previous ruleset remains active")
		}
		return nil
	}

	if err := c.services.Start(ctx, constants.ServicePF); err != nil {
		return errors.NewSystemError("cannot start pf, host would be left without a firewall", err)
	}

	return nil
}

// render executes the ruleset template.
func (c *PFConfigurator) render(policy entities.FirewallPolicy) ([]byte, error) {
	tmpl, err := template.New("pf.conf").Parse(pfTemplate)
	if err != nil {
		return nil, errors.NewSystemError("cannot parse pf template", err)
	}

	data := struct {
		Interface string
		TCPPorts  string
		UDPPorts  string
	}{
		Interface: policy.Interface.String(),
		TCPPorts:  joinPorts(policy.TCPPorts),
		UDPPorts:  joinPorts(policy.UDPPorts),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.NewSystemError("cannot render pf template", err)
	}

	return buf.Bytes(), nil
}

func joinPorts(ports []int) string {
	parts := make([]string, 0, len(ports))
	for _, port := range ports {
		parts = append(parts, strconv.Itoa(port))
	}
	return strings.Join(parts, " ")
}
