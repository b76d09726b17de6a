package proxy

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	domainErrors "bsdsetup/internal/domain/errors"
	"bsdsetup/internal/infrastructure/adapters"
	"bsdsetup/internal/infrastructure/services"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockServiceManager struct {
	mock.Mock
}

func (m *MockServiceManager) Enable(ctx context.Context, service string) error {
	return m.Called(ctx, service).Error(0)
}

func (m *MockServiceManager) IsRunning(ctx context.Context, service string) bool {
	return m.Called(ctx, service).Bool(0)
}

func (m *MockServiceManager) Start(ctx context.Context, service string) error {
	return m.Called(ctx, service).Error(0)
}

func (m *MockServiceManager) Restart(ctx context.Context, service string) error {
	return m.Called(ctx, service).Error(0)
}

func (m *MockServiceManager) Reload(ctx context.Context, service string) error {
	return m.Called(ctx, service).Error(0)
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newConfigurator(t *testing.T) (*CaddyConfigurator, string, string, *MockServiceManager) {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "Caddyfile")
	backupDir := filepath.Join(dir, "backups")

	fs := adapters.NewRealFileSystem()
	clock := &fixedClock{now: time.Date(2025, 1, 8, 15, 4, 5, 0, time.UTC)}
	backup := services.NewFileBackupService(fs, clock, newTestLogger(), backupDir)
	svc := new(MockServiceManager)

	c := NewCaddyConfigurator(fs, backup, svc, newTestLogger(), configPath)
	return c, configPath, backupDir, svc
}

func TestCaddyConfigurator_Configure(t *testing.T) {
	c, configPath, _, _ := newConfigurator(t)

	site := Site{
		Hostnames:   []string{"media.example.com", "example.com"},
		BackendPort: 32400,
		AdminEmail:  "admin@example.com",
	}
	require.NoError(t, c.Configure(context.Background(), site))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	caddyfile := string(content)

	assert.Contains(t, caddyfile, "email admin@example.com")
	assert.Contains(t, caddyfile, "media.example.com {")
	assert.Contains(t, caddyfile, "example.com {")
	assert.Contains(t, caddyfile, "reverse_proxy 127.0.0.1:32400")
}

func TestCaddyConfigurator_Configure_NoAdminEmail(t *testing.T) {
	c, configPath, _, _ := newConfigurator(t)

	require.NoError(t, c.Configure(context.Background(), Site{
		Hostnames:   []string{"example.com"},
		BackendPort: 8096,
	}))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "email")
}

func TestCaddyConfigurator_Configure_Validation(t *testing.T) {
	c, configPath, _, _ := newConfigurator(t)

	tests := []struct {
		name string
		site Site
	}{
		{name: "no hostnames", site: Site{BackendPort: 32400}},
		{name: "port out of range", site: Site{Hostnames: []string{"example.com"}, BackendPort: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Configure(context.Background(), tt.site)
			assert.ErrorIs(t, err, &domainErrors.DomainError{Type: domainErrors.ErrorTypeValidation})
			assert.NoFileExists(t, configPath)
		})
	}
}

func TestCaddyConfigurator_Configure_BacksUpPriorVersion(t *testing.T) {
	c, configPath, backupDir, _ := newConfigurator(t)
	prior := []byte("old config\n")
	require.NoError(t, os.WriteFile(configPath, prior, 0644))

	require.NoError(t, c.Configure(context.Background(), Site{
		Hostnames:   []string{"example.com"},
		BackendPort: 32400,
	}))

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	backed, err := os.ReadFile(filepath.Join(backupDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, prior, backed)
}

func TestCaddyConfigurator_Activate(t *testing.T) {
	t.Run("reloads when running", func(t *testing.T) {
		c, _, _, svc := newConfigurator(t)
		svc.On("Enable", mock.Anything, "caddy").Return(nil).Once()
		svc.On("IsRunning", mock.Anything, "caddy").Return(true).Once()
		svc.On("Reload", mock.Anything, "caddy").Return(nil).Once()

		assert.NoError(t, c.Activate(context.Background()))
		svc.AssertExpectations(t)
	})

	t.Run("reload failure is an error", func(t *testing.T) {
		c, _, _, svc := newConfigurator(t)
		svc.On("Enable", mock.Anything, "caddy").Return(nil).Once()
		svc.On("IsRunning", mock.Anything, "caddy").Return(true).Once()
		svc.On("Reload", mock.Anything, "caddy").Return(errors.New("invalid Caddyfile")).Once()

		err := c.Activate(context.Background())
		assert.ErrorIs(t, err, &domainErrors.DomainError{Type: domainErrors.ErrorTypeSystem})
		svc.AssertExpectations(t)
	})

	t.Run("starts when stopped", func(t *testing.T) {
		c, _, _, svc := newConfigurator(t)
		svc.On("Enable", mock.Anything, "caddy").Return(nil).Once()
		svc.On("IsRunning", mock.Anything, "caddy").Return(false).Once()
		svc.On("Start", mock.Anything, "caddy").Return(nil).Once()

		assert.NoError(t, c.Activate(context.Background()))
		svc.AssertExpectations(t)
	})
}
