package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("service_name: signup\n"), 0600))

	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantOutput string
	}{
		{
			name:       "valid config",
			args:       []string{"validate", "--config", "../../res/config.yaml"},
			wantOutput: "users API at http://localhost:8081",
		},
		{
			name:    "config failing validation",
			args:    []string{"validate", "-c", invalid},
			wantErr: true,
		},
		{
			name:    "missing config",
			args:    []string{"validate", "-c", filepath.Join(dir, "missing.yaml")},
			wantErr: true,
		},
		{
			name:    "unexpected argument",
			args:    []string{"validate", "extra"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := NewRootCommand()
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.wantOutput)
		})
	}
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "signup version dev\n", out.String())
}
