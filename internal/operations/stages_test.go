package operations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payrolletl/internal/dataprocessing"
	"payrolletl/internal/operations"
	"payrolletl/pkg/contracts/domain"
)

func TestStageFactory(t *testing.T) {
	steps := operations.StageFactory(operations.Config{Workers: 2}, nil)

	require.Len(t, steps, 5)
	wantNames := []string{
		operations.StepNameIngest,
		operations.StepNameClean,
		operations.StepNameDerive,
		operations.StepNameSummarize,
		operations.StepNameWrite,
	}
	for i, step := range steps {
		assert.Equal(t, wantNames[i], step.Name())
	}
}

func TestStages_RequireDataset(t *testing.T) {
	steps := []operations.Step{
		operations.NewCleanStage(nil),
		operations.NewDeriveStage(nil),
		operations.NewSummarizeStage(nil),
		operations.NewWriteStage(nil),
	}

	for _, step := range steps {
		t.Run(step.ID(), func(t *testing.T) {
			state := operations.NewRunState("run", operations.Config{OutputFolder: t.TempDir()})

			err := step.Execute(context.Background(), state)
			require.Error(t, err)
			assert.Equal(t, operations.ErrorTypeValidation, operations.GetErrorType(err))
			assert.Equal(t, step.ID(), operations.FailedStep(err))
		})
	}
}

func TestSummarizeStage_RequiresGross(t *testing.T) {
	ds := domain.NewDataset("id", "gross_salary")
	ds.Append(domain.Record{domain.Present("1"), domain.Present("10")})
	ds.Append(domain.Record{domain.Present("2"), domain.Present("20")})

	state := operations.NewRunState("run", operations.Config{})
	state.Dataset = ds

	err := operations.NewSummarizeStage(nil).Execute(context.Background(), state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not been derived")
}

func TestDeriveThenSummarize_ThreadsDataset(t *testing.T) {
	ds := domain.NewDataset("id", "basic_salary", "allowances")
	ds.Append(domain.Record{domain.Present("1"), domain.Present("100"), domain.Present("0")})
	ds.Append(domain.Record{domain.Present("2"), domain.Present("200"), domain.Present("0")})
	ds.Append(domain.Record{domain.Present("3"), domain.Present("300"), domain.Present("0")})

	state := operations.NewRunState("run", operations.Config{})
	state.Dataset = ds

	require.NoError(t, operations.NewDeriveStage(nil).Execute(context.Background(), state))
	derived := state.Dataset
	require.NoError(t, operations.NewSummarizeStage(nil).Execute(context.Background(), state))

	assert.Equal(t, 3, ds.Width(), "input dataset is not mutated")
	assert.Equal(t, 3, derived.Len(), "derived dataset is not mutated")
	assert.Equal(t, 5, state.Dataset.Len())
	assert.Equal(t, dataprocessing.IntAmount(200), state.Summary.SecondHighest)
	assert.Equal(t, 200.0, state.Summary.Average)
}
