package operations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payrolletl/internal/operations"
)

// mockStep runs fn, or succeeds when fn is nil
type mockStep struct {
	operations.BaseStage
	fn func(ctx context.Context, state *operations.RunState) error
}

func newMockStep(id string, fn func(ctx context.Context, state *operations.RunState) error) *mockStep {
	return &mockStep{
		BaseStage: operations.NewBaseStage(id, "Mock "+id),
		fn:        fn,
	}
}

func (m *mockStep) Execute(ctx context.Context, state *operations.RunState) error {
	if m.fn == nil {
		return nil
	}
	return m.fn(ctx, state)
}

func TestRegistry(t *testing.T) {
	registry := operations.NewRegistry()

	assert.Equal(t, 0, registry.Count())
	assert.NotNil(t, registry.List())
	assert.Empty(t, registry.List())
}

func TestRegistryRegister(t *testing.T) {
	registry := operations.NewRegistry()

	step1 := newMockStep("step1", nil)
	step2 := newMockStep("step2", nil)
	step3 := newMockStep("step3", nil)

	require.NoError(t, registry.Register(step1))
	require.NoError(t, registry.Register(step2))
	require.NoError(t, registry.Register(step3))

	assert.Equal(t, 3, registry.Count())
	assert.True(t, registry.Has("step2"))
	assert.False(t, registry.Has("step4"))

	got, err := registry.Get("step1")
	require.NoError(t, err)
	assert.Same(t, step1, got)

	assert.Equal(t, []string{"step1", "step2", "step3"}, registry.ListIDs())
	steps := registry.List()
	require.Len(t, steps, 3)
	assert.Equal(t, "step3", steps[2].ID())
}

func TestRegistryRegisterErrors(t *testing.T) {
	tests := []struct {
		name    string
		step    operations.Step
		wantErr string
	}{
		{name: "nil step", step: nil, wantErr: "nil step"},
		{name: "empty id", step: newMockStep("", nil), wantErr: "cannot be empty"},
		{name: "duplicate id", step: newMockStep("dup", nil), wantErr: "already registered"},
	}

	registry := operations.NewRegistry()
	require.NoError(t, registry.Register(newMockStep("dup", nil)))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Register(tt.step)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
	assert.Equal(t, 1, registry.Count())
}

func TestRegistryGetMissing(t *testing.T) {
	_, err := operations.NewRegistry().Get("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent")
}
