package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekit/cli/internal/templates"
)

func TestTemplatesCmd(t *testing.T) {
	res := runSitekit(t, t.TempDir(), "", "templates")
	require.NoError(t, res.err)

	for _, header := range []string{"ARCHETYPE", "DEFAULT NAME", "TEMPLATES"} {
		assert.Contains(t, res.stdout, header)
	}
	for _, d := range templates.List() {
		assert.Contains(t, res.stdout, d.ID)
		assert.Contains(t, res.stdout, d.DefaultName)
	}
	assert.Contains(t, res.stdout, "tailwind")
}

func TestTemplatesCmd_Aliases(t *testing.T) {
	for _, alias := range []string{"archetypes", "ls"} {
		t.Run(alias, func(t *testing.T) {
			res := runSitekit(t, t.TempDir(), "", alias)
			require.NoError(t, res.err)
			assert.Contains(t, res.stdout, "my-landing-page")
		})
	}
}

func TestTemplatesCmd_RejectsArgs(t *testing.T) {
	res := runSitekit(t, t.TempDir(), "", "templates", "blog")
	require.Error(t, res.err)
}
