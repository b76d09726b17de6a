package steps

import (
	"context"
	"fmt"
	"testing"

	"bsdsetup/internal/domain/constants"
	"bsdsetup/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestEnableMediaServiceStep_Run(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(*MockServiceManager)
		wantErr    bool
	}{
		{
			name: "enables and starts a stopped service",
			setupMocks: func(services *MockServiceManager) {
				services.On("Enable", ctx, constants.ServicePlex).Return(nil)
				services.On("IsRunning", ctx, constants.ServicePlex).Return(false)
				services.On("Start", ctx, constants.ServicePlex).Return(nil)
			},
		},
		{
			name: "running service is not restarted",
			setupMocks: func(services *MockServiceManager) {
				services.On("Enable", ctx, constants.ServicePlex).Return(nil)
				services.On("IsRunning", ctx, constants.ServicePlex).Return(true)
			},
		},
		{
			name: "start failure surfaces as the step error",
			setupMocks: func(services *MockServiceManager) {
				services.On("Enable", ctx, constants.ServicePlex).Return(nil)
				services.On("IsRunning", ctx, constants.ServicePlex).Return(false)
				services.On("Start", ctx, constants.ServicePlex).Return(fmt.Errorf("service not found"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := new(MockServiceManager)
			tt.setupMocks(services)

			step := NewEnableMediaServiceStep(services, newTestLogger())
			err := step.Run(ctx)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, entities.PolicyWarn, step.Policy())
			services.AssertExpectations(t)
		})
	}
}
