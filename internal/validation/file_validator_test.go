package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payrolletl/internal/errors"
)

func TestFileValidator_ValidateInputDirectory(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantType  errors.ErrorType
		wantErr   bool
	}{
		{
			name: "valid directory with files",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(dir, "a.dat"), []byte("id\n"), 0644))
				return dir
			},
		},
		{
			name:      "valid empty directory",
			setupFunc: func(t *testing.T) string { return t.TempDir() },
		},
		{
			name: "non-existent directory",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent")
			},
			wantErr:  true,
			wantType: errors.ErrTypeNotFound,
		},
		{
			name: "path is a file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "file.dat")
				require.NoError(t, os.WriteFile(path, []byte("id\n"), 0644))
				return path
			},
			wantErr:  true,
			wantType: errors.ErrTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFileValidator(nil)
			err := v.ValidateInputDirectory(tt.setupFunc(t))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.wantType))
		})
	}
}
