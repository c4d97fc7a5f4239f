package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/cli/internal/installer"
	"github.com/sitekit/cli/internal/testutil"
)

func TestVersionCmd(t *testing.T) {
	testutil.InstallFakeManager(t, "bun", "1.1.0", "exit 0")

	res := runSitekit(t, t.TempDir(), "", "version")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "sitekit version")
	assert.Contains(t, res.stdout, "Package managers:")
	assert.Contains(t, res.stdout, "bun    1.1.0")
	for _, name := range installer.SupportedPackageManagers() {
		assert.Contains(t, res.stdout, "  "+name)
	}
}

func TestFormatManager(t *testing.T) {
	tests := []struct {
		name string
		info installer.Info
		err  error
		want string
	}{
		{
			name: "missing",
			info: installer.Info{Name: "pnpm"},
			err:  errors.New("not found"),
			want: "  pnpm   not found",
		},
		{
			name: "compatible",
			info: installer.Info{Name: "npm", Version: "10.2.4", Path: "/usr/bin/npm", Compatible: true},
			want: "  npm    10.2.4 (compatible)  /usr/bin/npm",
		},
		{
			name: "too old",
			info: installer.Info{Name: "yarn", Version: "0.27.5", Path: "/bin/yarn", Message: "requires >= 1.22"},
			want: "  yarn   0.27.5 (requires >= 1.22)  /bin/yarn",
		},
		{
			name: "unparsable version",
			info: installer.Info{Name: "bun", Path: "/bin/bun", Compatible: true},
			want: "  bun    unknown (compatible)  /bin/bun",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatManager(tt.info, tt.err))
		})
	}
}
