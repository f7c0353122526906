package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tmpDir := t.TempDir()
	manifest := filepath.Join(tmpDir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("Django>=1.3.0\nPygments>=1.4 # for the code plugin\n"), 0o600))

	t.Chdir(tmpDir)

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{
			name:         "version command",
			args:         []string{"reqs", "version"},
			expectedExit: 0,
		},
		{
			name:         "parse valid manifest",
			args:         []string{"reqs", "parse", manifest},
			expectedExit: 0,
		},
		{
			name:         "parse missing manifest",
			args:         []string{"reqs", "parse", "no-such-file.txt"},
			expectedExit: 1,
		},
		{
			name:         "unknown command",
			args:         []string{"reqs", "install"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.expectedExit, run())
		})
	}
}
