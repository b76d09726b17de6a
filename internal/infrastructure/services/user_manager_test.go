package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPWUserManager_Exists(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		executor := new(MockCommandExecutor)
		executor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "pw", "usershow", "sawyer").
			Return([]byte("sawyer:*:1001:1001::0:0:provisioned account:/home/sawyer:/usr/local/bin/bash"), nil).Once()

		manager := NewPWUserManager(executor, newTestLogger(), 30*time.Second)
		assert.True(t, manager.Exists(context.Background(), "sawyer"))
		executor.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		executor := new(MockCommandExecutor)
		executor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "pw", "usershow", "sawyer").
			Return([]byte(nil), errors.New("pw: no such user `sawyer'")).Once()

		manager := NewPWUserManager(executor, newTestLogger(), 30*time.Second)
		assert.False(t, manager.Exists(context.Background(), "sawyer"))
		executor.AssertExpectations(t)
	})
}

func TestPWUserManager_Create(t *testing.T) {
	executor := new(MockCommandExecutor)
	executor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "pw",
		"useradd", "sawyer", "-m", "-d", "/home/sawyer", "-s", "/usr/local/bin/bash",
		"-G", "wheel", "-c", "provisioned account").
		Return([]byte(""), nil).Once()

	manager := NewPWUserManager(executor, newTestLogger(), 30*time.Second)
	err := manager.Create(context.Background(), "sawyer", "/usr/local/bin/bash", "/home/sawyer")

	assert.NoError(t, err)
	executor.AssertExpectations(t)
}

func TestPWUserManager_SetPassword_GoesOverStdin(t *testing.T) {
	executor := new(MockCommandExecutor)
	executor.On("ExecuteWithInput", mock.Anything, "hunter2", "pw", "usermod", "sawyer", "-h", "0").
		Return([]byte(""), nil).Once()

	manager := NewPWUserManager(executor, newTestLogger(), 30*time.Second)
	err := manager.SetPassword(context.Background(), "sawyer", "hunter2")

	assert.NoError(t, err)
	executor.AssertExpectations(t)
}

func TestPWUserManager_ChownRecursive(t *testing.T) {
	executor := new(MockCommandExecutor)
	executor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "chown", "-R", "sawyer:sawyer", "/home/sawyer").
		Return([]byte(""), nil).Once()

	manager := NewPWUserManager(executor, newTestLogger(), 30*time.Second)
	err := manager.ChownRecursive(context.Background(), "sawyer", "/home/sawyer")

	assert.NoError(t, err)
	executor.AssertExpectations(t)
}
