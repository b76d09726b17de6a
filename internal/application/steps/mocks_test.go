package steps

import (
	"context"
	"io"
	"os"
	"time"

	"bsdsetup/internal/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type MockCommandExecutor struct {
	mock.Mock
}

func (m *MockCommandExecutor) Execute(ctx context.Context, command string, args ...string) ([]byte, error) {
	callArgs := []interface{}{ctx, command}
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	result := m.Called(callArgs...)
	return result.Get(0).([]byte), result.Error(1)
}

func (m *MockCommandExecutor) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error) {
	callArgs := []interface{}{ctx, timeout, command}
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	result := m.Called(callArgs...)
	return result.Get(0).([]byte), result.Error(1)
}

func (m *MockCommandExecutor) ExecuteWithInput(ctx context.Context, input string, command string, args ...string) ([]byte, error) {
	callArgs := []interface{}{ctx, input, command}
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	result := m.Called(callArgs...)
	return result.Get(0).([]byte), result.Error(1)
}

type MockFileSystem struct {
	mock.Mock
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	args := m.Called(path, data, perm)
	return args.Error(0)
}

func (m *MockFileSystem) Exists(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	args := m.Called(path, perm)
	return args.Error(0)
}

func (m *MockFileSystem) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockFileSystem) ListFiles(path string) ([]string, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockServiceManager struct {
	mock.Mock
}

func (m *MockServiceManager) Enable(ctx context.Context, service string) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceManager) IsRunning(ctx context.Context, service string) bool {
	args := m.Called(ctx, service)
	return args.Bool(0)
}

func (m *MockServiceManager) Start(ctx context.Context, service string) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceManager) Restart(ctx context.Context, service string) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceManager) Reload(ctx context.Context, service string) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

type MockPackageManager struct {
	mock.Mock
}

func (m *MockPackageManager) Update(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackageManager) IsInstalled(ctx context.Context, name string) bool {
	args := m.Called(ctx, name)
	return args.Bool(0)
}

func (m *MockPackageManager) Install(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type MockUserManager struct {
	mock.Mock
}

func (m *MockUserManager) Exists(ctx context.Context, name string) bool {
	args := m.Called(ctx, name)
	return args.Bool(0)
}

func (m *MockUserManager) Create(ctx context.Context, name, shell, home string) error {
	args := m.Called(ctx, name, shell, home)
	return args.Error(0)
}

func (m *MockUserManager) SetPassword(ctx context.Context, name, password string) error {
	args := m.Called(ctx, name, password)
	return args.Error(0)
}

func (m *MockUserManager) ChownRecursive(ctx context.Context, name, path string) error {
	args := m.Called(ctx, name, path)
	return args.Error(0)
}

type MockRouteDetector struct {
	mock.Mock
}

func (m *MockRouteDetector) DefaultInterface(ctx context.Context) (entities.InterfaceName, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.InterfaceName), args.Error(1)
}

type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) Backup(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

type MockPrivilegeChecker struct {
	mock.Mock
}

func (m *MockPrivilegeChecker) IsRoot() bool {
	args := m.Called()
	return args.Bool(0)
}

type MockReachabilityProber struct {
	mock.Mock
}

func (m *MockReachabilityProber) Probe(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
