package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payrolletl/internal/infrastructure"
	"payrolletl/internal/shared/testutil"
)

func setupDirs(t *testing.T) (string, string) {
	t.Helper()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	input := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.MkdirAll(input, 0755))
	return input, filepath.Join(t.TempDir(), "out", "nested")
}

func TestRun_Success(t *testing.T) {
	input, output := setupDirs(t)
	testutil.WriteTSV(t, input, "employees.dat", testutil.EmployeeHeader,
		testutil.Employee("1", "100", "0"),
		testutil.Employee("2", "200", "0"),
		testutil.Employee("3", "300", "0"),
	)
	metricsFile := filepath.Join(t.TempDir(), "etl.prom")
	t.Setenv("ETL_TELEMETRY_METRICS_FILE", metricsFile)

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-in", input, "-out", output, "-workers", "2"}, &stdout)
	require.NoError(t, err)

	assert.Equal(t, "Task completed\n", stdout.String())

	rows := testutil.ReadCSV(t, filepath.Join(output, "RESULT.csv"))
	require.Len(t, rows, 6)
	assert.Equal(t, "Second Highest Salary = 200", rows[4][0])
	assert.Equal(t, "Average Salary = 200.0", rows[5][0])

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "payroll_etl_rows_written 5")
}

func TestRun_EnvironmentFolders(t *testing.T) {
	input, output := setupDirs(t)
	testutil.WriteTSV(t, input, "employees.dat", testutil.EmployeeHeader,
		testutil.Employee("1", "10", "1"),
		testutil.Employee("2", "20", "2"),
	)
	t.Setenv("ETL_PATHS_INPUT_FOLDER", input)
	t.Setenv("ETL_PATHS_OUTPUT_FOLDER", output)

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), nil, &stdout))
	assert.FileExists(t, filepath.Join(output, "RESULT.csv"))
}

func TestRun_Failure(t *testing.T) {
	input, output := setupDirs(t)

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-in", input, "-out", output}, &stdout)
	require.Error(t, err)

	assert.Empty(t, stdout.String())
	assert.True(t, strings.Contains(err.Error(), "no input files"), err.Error())
}

func TestRun_BadFlag(t *testing.T) {
	setupDirs(t)

	err := run(context.Background(), []string{"-unknown"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunVersion(t *testing.T) {
	var stdout bytes.Buffer

	err := run(context.Background(), []string{"-version"}, &stdout)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "payroll-etl v")
}
