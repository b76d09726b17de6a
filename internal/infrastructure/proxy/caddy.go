package proxy

import (
	"bytes"
	"context"
	"text/template"

	"bsdsetup/internal/domain/constants"
	"bsdsetup/internal/domain/errors"
	"bsdsetup/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// caddyTemplate proxies each hostname to the local backend. Caddy itself
// redirects plain HTTP to HTTPS and manages certificates.
const caddyTemplate = `# Generated by bsdsetup. Manual edits will be overwritten on the next run.
{{- if .AdminEmail }}
{
	email {{ .AdminEmail }}
}
{{- end }}
{{ range .Hostnames }}
{{ . }} {
	reverse_proxy 127.0.0.1:{{ $.BackendPort }}
}
{{ end }}`

// Site describes what the reverse proxy serves.
type Site struct {
	Hostnames   []string
	BackendPort int
	AdminEmail  string
}

// CaddyConfigurator renders the Caddyfile and brings the caddy service
// into a running state with the new configuration.
type CaddyConfigurator struct {
	fileSystem interfaces.FileSystem
	backup     interfaces.BackupService
	services   interfaces.ServiceManager
	logger     *logrus.Logger
	configPath string
}

// NewCaddyConfigurator creates a new CaddyConfigurator.
func NewCaddyConfigurator(
	fs interfaces.FileSystem,
	backup interfaces.BackupService,
	services interfaces.ServiceManager,
	logger *logrus.Logger,
	configPath string,
) *CaddyConfigurator {
	return &CaddyConfigurator{
		fileSystem: fs,
		backup:     backup,
		services:   services,
		logger:     logger,
		configPath: configPath,
	}
}

// Configure renders and writes the Caddyfile, backing up any prior
// version first.
func (c *CaddyConfigurator) Configure(ctx context.Context, site Site) error {
	if len(site.Hostnames) == 0 {
		return errors.NewValidationError("reverse proxy needs at least one hostname", nil)
	}
	if site.BackendPort < 1 || site.BackendPort > 65535 {
		return errors.NewValidationError("reverse proxy backend port out of range", nil)
	}

	content, err := c.render(site)
	if err != nil {
		return err
	}

	if _, err := c.backup.Backup(ctx, c.configPath); err != nil {
		return err
	}

	if err := c.fileSystem.WriteFile(c.configPath, content, constants.ConfigFilePermission); err != nil {
		return errors.NewSystemError("cannot write Caddyfile", err)
	}

	c.logger.WithFields(logrus.Fields{
		"path":      c.configPath,
		"hostnames": site.Hostnames,
	}).Info("Reverse-proxy configuration written")

	return nil
}

// Activate brings caddy into a running state with the configuration on
// disk: reload when running, start when stopped. Either failure leaves the
// proxy without the new configuration and is an error.
func (c *CaddyConfigurator) Activate(ctx context.Context) error {
	if err := c.services.Enable(ctx, constants.ServiceCaddy); err != nil {
		return err
	}

	if c.services.IsRunning(ctx, constants.ServiceCaddy) {
		if err := c.services.Reload(ctx, constants.ServiceCaddy); err != nil {
			return errors.NewSystemError("caddy did not accept the new configuration", err)
		}
		return nil
	}

	if err := c.services.Start(ctx, constants.ServiceCaddy); err != nil {
		return errors.NewSystemError("cannot start caddy", err)
	}

	return nil
}

func (c *CaddyConfigurator) render(site Site) ([]byte, error) {
	tmpl, err := template.New("Caddyfile").Parse(caddyTemplate)
	if err != nil {
		return nil, errors.NewSystemError("cannot parse Caddyfile template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, site); err != nil {
		return nil, errors.NewSystemError("cannot render Caddyfile template", err)
	}

	return buf.Bytes(), nil
}
