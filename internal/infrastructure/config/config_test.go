package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	domainErrors "bsdsetup/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileEnvLoader_Load_Defaults(t *testing.T) {
	loader := NewFileEnvLoader()

	cfg, err := loader.Load("")
	require.NoError(t, err)

	assert.Equal(t, "sawyer", cfg.User.Name)
	assert.Equal(t, "/usr/local/bin/bash", cfg.User.Shell)
	assert.Empty(t, cfg.User.InitialPassword)
	assert.True(t, cfg.SSH.PasswordAuthentication)
	assert.Equal(t, []int{22, 80, 443, 32400}, cfg.Firewall.TCPPorts)
	assert.Contains(t, cfg.Firewall.UDPPorts, 1900)
	assert.Equal(t, 32400, cfg.Proxy.BackendPort)
	assert.Equal(t, "/etc/pf.conf", cfg.Paths.PFConfig)
	assert.Equal(t, 5*time.Second, cfg.Runtime.ProbeTimeout)
}

func TestFileEnvLoader_Load_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bsdsetup.yaml")
	content := `
user:
  name: operator
  shell: /bin/sh
ssh:
  password_authentication: false
proxy:
  hostnames: ["media.example.com", "example.com"]
  backend_port: 8096
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewFileEnvLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "operator", cfg.User.Name)
	assert.Equal(t, "/bin/sh", cfg.User.Shell)
	assert.False(t, cfg.SSH.PasswordAuthentication)
	assert.Equal(t, []string{"media.example.com", "example.com"}, cfg.Proxy.Hostnames)
	assert.Equal(t, 8096, cfg.Proxy.BackendPort)
	// Untouched sections keep their defaults.
	assert.Equal(t, []int{22, 80, 443, 32400}, cfg.Firewall.TCPPorts)
}

func TestFileEnvLoader_Load_EnvOverrides(t *testing.T) {
	t.Setenv("BSDSETUP_USER", "deploy")
	t.Setenv("BSDSETUP_PKG_JOBS", "8")
	t.Setenv("BSDSETUP_PROBE_TIMEOUT", "2s")
	t.Setenv("BSDSETUP_PROXY_HOSTNAMES", "a.example.com, b.example.com")

	cfg, err := NewFileEnvLoader().Load("")
	require.NoError(t, err)

	assert.Equal(t, "deploy", cfg.User.Name)
	assert.Equal(t, 8, cfg.Runtime.PkgJobs)
	assert.Equal(t, 2*time.Second, cfg.Runtime.ProbeTimeout)
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, cfg.Proxy.Hostnames)
}

func TestFileEnvLoader_Load_MissingConfigFile(t *testing.T) {
	_, err := NewFileEnvLoader().Load("/nonexistent/bsdsetup.yaml")
	assert.Error(t, err)
	assert.ErrorIs(t, err, &domainErrors.DomainError{Type: domainErrors.ErrorTypeValidation})
}

func TestFileEnvLoader_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty user name", mutate: func(c *Config) { c.User.Name = "" }},
		{name: "relative shell path", mutate: func(c *Config) { c.User.Shell = "bash" }},
		{name: "no proxy hostnames", mutate: func(c *Config) { c.Proxy.Hostnames = nil }},
		{name: "backend port out of range", mutate: func(c *Config) { c.Proxy.BackendPort = 0 }},
		{name: "empty tcp allow-list", mutate: func(c *Config) { c.Firewall.TCPPorts = nil }},
		{name: "firewall port out of range", mutate: func(c *Config) { c.Firewall.UDPPorts = []int{99999} }},
		{name: "zero command timeout", mutate: func(c *Config) { c.Runtime.CommandTimeout = 0 }},
		{name: "zero pkg jobs", mutate: func(c *Config) { c.Runtime.PkgJobs = 0 }},
	}

	loader := &FileEnvLoader{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			err := loader.validate(cfg)
			assert.ErrorIs(t, err, &domainErrors.DomainError{Type: domainErrors.ErrorTypeValidation})
		})
	}
}
