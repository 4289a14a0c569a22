package schemafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgerrors "github.com/thoreinstein/loadcfg/internal/errors"
	"github.com/thoreinstein/loadcfg/value"
)

const sampleSchema = `host: string
port: integer
ratio: float
debug: boolean
tls:
  cert: string
  key: string
`

func TestParse(t *testing.T) {
	tmpl, err := Parse([]byte(sampleSchema), "server")
	require.NoError(t, err)
	assert.Equal(t, "server", tmpl.Name())

	fields := tmpl.Fields()
	require.Len(t, fields, 5)

	wantNames := []string{"host", "port", "ratio", "debug", "tls"}
	for i, f := range fields {
		assert.Equal(t, wantNames[i], f.Name)
	}

	assert.Equal(t, value.KindString, fields[0].Type.Kind())
	assert.Equal(t, value.KindInt, fields[1].Type.Kind())
	assert.Equal(t, value.KindFloat, fields[2].Type.Kind())
	assert.Equal(t, value.KindBool, fields[3].Type.Kind())

	require.True(t, fields[4].Type.IsNested())
	sub := fields[4].Type.Nested()
	assert.Equal(t, "tls", sub.Name())
	assert.Len(t, sub.Fields(), 2)
}

func TestParse_TypeAliases(t *testing.T) {
	tmpl, err := Parse([]byte("a: int\nb: bool\nc: str\n"), "aliases")
	require.NoError(t, err)
	fields := tmpl.Fields()
	assert.Equal(t, value.KindInt, fields[0].Type.Kind())
	assert.Equal(t, value.KindBool, fields[1].Type.Kind())
	assert.Equal(t, value.KindString, fields[2].Type.Kind())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown type", "a: complex128\n"},
		{"list value", "a:\n  - string\n"},
		{"empty file", ""},
		{"top-level sequence", "- a\n- b\n"},
		{"not yaml", "a: [unclosed\nb: x"},
		{"duplicate handled by template", "a: string\na: integer\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), "bad")
			require.Error(t, err)
		})
	}
}

func TestParse_UnknownTypeIsInvalidSchema(t *testing.T) {
	_, err := Parse([]byte("a: complex128\n"), "bad")
	assert.ErrorIs(t, err, cfgerrors.ErrInvalidSchema)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSchema), 0o644))

	tmpl, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "server", tmpl.Name())
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParse_GeneratedExampleValidatesAgainstSchema(t *testing.T) {
	tmpl, err := Parse([]byte(sampleSchema), "server")
	require.NoError(t, err)

	gen, err := tmpl.Generate("yaml")
	require.NoError(t, err)

	tree := gen.Tree()
	assert.NoError(t, tmpl.Validate(tree))
}
