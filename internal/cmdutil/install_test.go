package cmdutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/cli/internal/config"
	oerrors "github.com/sitekit/cli/internal/errors"
	"github.com/sitekit/cli/internal/installer"
)

func TestNewInstaller(t *testing.T) {
	t.Setenv("SITEKIT_PACKAGE_MANAGER", "")

	tests := []struct {
		name        string
		opts        InstallerOpts
		wantPM      string
		wantSource  config.ConfigSource
		wantTimeout time.Duration
		wantCode    int
	}{
		{
			name:        "defaults",
			opts:        InstallerOpts{},
			wantPM:      "npm",
			wantSource:  config.SourceDefault,
			wantTimeout: 10 * time.Minute,
		},
		{
			name: "config",
			opts: InstallerOpts{Config: &config.Config{
				Install: config.InstallConfig{PackageManager: "yarn", Timeout: "90s"},
			}},
			wantPM:      "yarn",
			wantSource:  config.SourceConfig,
			wantTimeout: 90 * time.Second,
		},
		{
			name: "flag beats config",
			opts: InstallerOpts{
				Flags:  InstallFlags{PackageManager: "bun"},
				Config: &config.Config{Install: config.InstallConfig{PackageManager: "yarn"}},
			},
			wantPM:      "bun",
			wantSource:  config.SourceFlag,
			wantTimeout: 10 * time.Minute,
		},
		{
			name:     "unsupported",
			opts:     InstallerOpts{Flags: InstallFlags{PackageManager: "pip"}},
			wantPM:   "pip",
			wantCode: oerrors.ExitValidationError,
		},
		{
			name: "bad timeout",
			opts: InstallerOpts{Config: &config.Config{
				Install: config.InstallConfig{PackageManager: "npm", Timeout: "later"},
			}},
			wantPM:   "npm",
			wantCode: oerrors.ExitValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, pm, err := NewInstaller(tt.opts)
			assert.Equal(t, tt.wantPM, pm.Value)

			if tt.wantCode != 0 {
				require.Error(t, err)
				var exitErr *oerrors.ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, tt.wantCode, exitErr.Code)
				assert.ErrorIs(t, err, oerrors.ErrValidation)
				assert.Nil(t, inst)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, pm.Source)
			assert.Equal(t, tt.wantPM, inst.Runner.PackageManager)
			assert.Equal(t, tt.wantTimeout, inst.Runner.Timeout)
			assert.Contains(t, inst.Title, tt.wantPM)
		})
	}
}

func TestSpinnerInstaller_MissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	inst := &SpinnerInstaller{Runner: installer.NewRunner("pnpm", nil, time.Second), Title: "installing"}
	err := inst.Install(context.Background(), t.TempDir())

	require.Error(t, err)
	assert.ErrorIs(t, err, installer.ErrNotFound)
}
