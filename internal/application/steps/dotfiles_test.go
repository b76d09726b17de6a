package steps

import (
	"context"
	"fmt"
	"testing"

	domainErrors "bsdsetup/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFetchDotfilesStep_Run(t *testing.T) {
	ctx := context.Background()
	stagingDir := "/var/tmp/bsdsetup/dotfiles"

	t.Run("clones when staging directory is absent", func(t *testing.T) {
		executor := new(MockCommandExecutor)
		fs := new(MockFileSystem)

		fs.On("Exists", stagingDir).Return(false)
		executor.On("Execute", ctx, "git", "clone", "--depth", "1",
			"https://example.com/dotfiles.git", stagingDir).Return([]byte{}, nil)

		step := NewFetchDotfilesStep(executor, fs, newTestLogger(), "https://example.com/dotfiles.git", stagingDir)
		assert.NoError(t, step.Run(ctx))
		executor.AssertExpectations(t)
	})

	t.Run("pulls when a clone already exists", func(t *testing.T) {
		executor := new(MockCommandExecutor)
		fs := new(MockFileSystem)

		fs.On("Exists", stagingDir).Return(true)
		executor.On("Execute", ctx, "git", "-C", stagingDir, "pull", "--ff-only").Return([]byte{}, nil)

		step := NewFetchDotfilesStep(executor, fs, newTestLogger(), "https://example.com/dotfiles.git", stagingDir)
		assert.NoError(t, step.Run(ctx))
		executor.AssertExpectations(t)
	})

	t.Run("no repository configured is a no-op", func(t *testing.T) {
		executor := new(MockCommandExecutor)
		fs := new(MockFileSystem)

		step := NewFetchDotfilesStep(executor, fs, newTestLogger(), "", stagingDir)
		assert.NoError(t, step.Run(ctx))
		executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("clone failure is a network error", func(t *testing.T) {
		executor := new(MockCommandExecutor)
		fs := new(MockFileSystem)

		fs.On("Exists", stagingDir).Return(false)
		executor.On("Execute", ctx, "git", "clone", "--depth", "1",
			"https://example.com/dotfiles.git", stagingDir).
			Return([]byte{}, fmt.Errorf("could not resolve host"))

		step := NewFetchDotfilesStep(executor, fs, newTestLogger(), "https://example.com/dotfiles.git", stagingDir)
		err := step.Run(ctx)

		assert.Error(t, err)
		assert.Equal(t, domainErrors.ErrorTypeNetwork, domainErrors.TypeOf(err))
	})
}
