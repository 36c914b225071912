package generate

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/termid/internal/cmd/base"
)

const vocab = `concepts:
  - name: Cats
    id: tmp-cats
    parent: tmp-animals
  - name: Animals # root
    id: tmp-animals
  - name: Dogs
    id: ex:1ec0aec1cd
    parent: tmp-animals
`

const want = `concepts:
  - name: Cats
    id: ex:6839d67214
    parent: ex:338b6e271a
  - name: Animals # root
    id: ex:338b6e271a
  - name: Dogs
    id: ex:1ec0aec1cd
    parent: ex:338b6e271a
`

func newCommand(t *testing.T, files map[string]string) (*Command, *cli.MockUi, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	ui := cli.NewMockUi()
	return &Command{
		Command: &base.Command{
			Log: hclog.NewNullLogger(),
			UI:  ui,
			Fs:  fs,
		},
	}, ui, fs
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

var baseArgs = []string{
	"-data", "/vocab.yaml",
	"-target", "concepts",
	"-namespace", "ex:",
	"-label", "name",
	"-parent-key", "parent",
}

func TestGenerate(t *testing.T) {
	c, ui, fs := newCommand(t, map[string]string{"/vocab.yaml": vocab})

	code := c.Run(baseArgs)
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	assert.Equal(t, want, readFile(t, fs, "/vocab.yaml"))
	out := ui.OutputWriter.String()
	assert.Contains(t, out, `Processed 3 entities in "concepts"`)
	assert.Contains(t, out, "Generated: 2")
	assert.Contains(t, out, "Updated:   3")
	assert.Contains(t, out, "Wrote /vocab.yaml")
}

func TestGenerateIdempotent(t *testing.T) {
	c, ui, fs := newCommand(t, map[string]string{"/vocab.yaml": want})

	code := c.Run(baseArgs)
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	assert.Equal(t, want, readFile(t, fs, "/vocab.yaml"))
	assert.Contains(t, ui.OutputWriter.String(), "Generated: 0")
	assert.Contains(t, ui.OutputWriter.String(), "already have valid identifiers")
}

func TestGenerateOutputAndVerbose(t *testing.T) {
	c, ui, fs := newCommand(t, map[string]string{"/vocab.yaml": vocab})

	args := append([]string{"-output", "/out.yaml", "-verbose"}, baseArgs...)
	code := c.Run(args)
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	assert.Equal(t, vocab, readFile(t, fs, "/vocab.yaml"))
	assert.Equal(t, want, readFile(t, fs, "/out.yaml"))
	out := ui.OutputWriter.String()
	assert.Contains(t, out, "tmp-animals -> ex:338b6e271a")
	assert.Contains(t, out, "tmp-cats -> ex:6839d67214")
}

func TestGenerateDryRun(t *testing.T) {
	c, ui, fs := newCommand(t, map[string]string{"/vocab.yaml": vocab})

	code := c.Run(append([]string{"-dry-run"}, baseArgs...))
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	assert.Equal(t, vocab, readFile(t, fs, "/vocab.yaml"))
	assert.Contains(t, ui.ErrorWriter.String(), "DRY RUN")
}

func TestGenerateConfigFile(t *testing.T) {
	c, ui, fs := newCommand(t, map[string]string{
		"/vocab.yaml": vocab,
		"/termid.hcl": `
data       = "/vocab.yaml"
target     = "concepts"
namespace  = "ex:"
label      = "name"
parent_key = "parent"
output     = "/out.yaml"
`,
	})

	code := c.Run([]string{"-config", "/termid.hcl", "-output", "/flag.yaml"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	assert.Equal(t, want, readFile(t, fs, "/flag.yaml"))
	exists, err := afero.Exists(fs, "/out.yaml")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		args   []string
		errMsg string
	}{
		{
			name:   "missing required flags",
			args:   []string{"-data", "/vocab.yaml"},
			errMsg: "invalid configuration",
		},
		{
			name:   "unknown flag",
			args:   []string{"-bogus"},
			errMsg: "error parsing flags",
		},
		{
			name:   "missing file",
			args:   baseArgs,
			errMsg: "error reading /vocab.yaml",
		},
		{
			name:   "missing target",
			files:  map[string]string{"/vocab.yaml": "terms: []\n"},
			args:   baseArgs,
			errMsg: "available keys: [terms]",
		},
		{
			name: "duplicate labels",
			files: map[string]string{"/vocab.yaml": `concepts:
  - name: Cats
  - name: Cats
`},
			args:   baseArgs,
			errMsg: "label pre-check failed",
		},
		{
			name: "cycle",
			files: map[string]string{"/vocab.yaml": `concepts:
  - {name: A, id: tmp-a, parent: tmp-b}
  - {name: B, id: tmp-b, parent: tmp-a}
`},
			args:   baseArgs,
			errMsg: "ordering error",
		},
		{
			name:   "unknown method",
			files:  map[string]string{"/vocab.yaml": vocab},
			args:   append([]string{"-method", "slug"}, baseArgs...),
			errMsg: "Method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ui, fs := newCommand(t, tt.files)

			code := c.Run(tt.args)
			assert.Equal(t, 1, code)
			assert.Contains(t, ui.ErrorWriter.String(), tt.errMsg)

			for path, content := range tt.files {
				assert.Equal(t, content, readFile(t, fs, path))
			}
		})
	}
}
