package vocabfile

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/termid/pkg/termid"
)

const sample = `# Example vocabulary
prefixes:
  ex: https://example.org/
concepts:
  - name: Alpha # root concept
    id: alpha
  - name: Beta
    parent: alpha
    note: second
`

func TestDecode(t *testing.T) {
	t.Run("keys in document order", func(t *testing.T) {
		doc, err := Decode([]byte(sample))
		require.NoError(t, err)
		assert.Equal(t, []string{"prefixes", "concepts"}, doc.Keys())
	})

	t.Run("root must be a mapping", func(t *testing.T) {
		_, err := Decode([]byte("- a\n- b\n"))
		assert.ErrorIs(t, err, ErrNotAMapping)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := Decode(nil)
		assert.ErrorIs(t, err, ErrNotAMapping)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		_, err := Decode([]byte("a: [b"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing YAML")
	})
}

func TestRecords(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		target  string
		want    int
		wantErr error
		errMsg  string
	}{
		{
			name:   "list of mappings",
			src:    sample,
			target: "concepts",
			want:   2,
		},
		{
			name:   "empty list",
			src:    "concepts: []\n",
			target: "concepts",
			want:   0,
		},
		{
			name:    "missing target lists keys",
			src:     sample,
			target:  "terms",
			wantErr: ErrTargetNotFound,
			errMsg:  "[prefixes concepts]",
		},
		{
			name:    "target is a mapping",
			src:     sample,
			target:  "prefixes",
			wantErr: ErrNotAList,
		},
		{
			name:    "scalar entry",
			src:     "concepts:\n  - name: Alpha\n  - just text\n",
			target:  "concepts",
			wantErr: ErrNotAMapping,
			errMsg:  `entry 1 of "concepts"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.src))
			require.NoError(t, err)

			records, err := doc.Records(tt.target)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
				return
			}
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}
}

func TestRecordLookup(t *testing.T) {
	doc, err := Decode([]byte(`
concepts:
  - name: Alpha
    id: ~
    empty: ""
    count: 3
    tags: [a, b]
`))
	require.NoError(t, err)
	records, err := doc.Records("concepts")
	require.NoError(t, err)
	rec := records[0]

	v, ok := rec.Lookup("name")
	assert.True(t, ok)
	assert.Equal(t, "Alpha", v)

	v, ok = rec.Lookup("count")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	for _, field := range []string{"id", "empty", "tags", "missing"} {
		_, ok := rec.Lookup(field)
		assert.False(t, ok, field)
	}
}

func TestProcessRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/vocab.yaml", []byte(sample), 0o600))

	doc, err := Load(fs, "/vocab.yaml")
	require.NoError(t, err)
	records, err := doc.Records("concepts")
	require.NoError(t, err)

	opts := termid.DefaultOptions()
	opts.Namespace = "ex:"
	opts.LabelField = "name"
	opts.ParentField = "parent"
	p, err := termid.NewProcessor(opts)
	require.NoError(t, err)

	result, err := p.Process(records)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"alpha": "ex:6132295fcf"}, result.Remap)

	require.NoError(t, doc.Save(fs, "/vocab.yaml"))

	out, err := afero.ReadFile(fs, "/vocab.yaml")
	require.NoError(t, err)
	assert.Equal(t, `# Example vocabulary
prefixes:
  ex: https://example.org/
concepts:
  - name: Alpha # root concept
    id: ex:6132295fcf
  - name: Beta
    parent: ex:6132295fcf
    note: second
    id: ex:0b87d66b88
`, string(out))

	info, err := fs.Stat("/vocab.yaml")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nope.yaml")
}
