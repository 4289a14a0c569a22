package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/loadcfg"
	"github.com/thoreinstein/loadcfg/format"
)

func setGenerateFlags(t *testing.T, schema, formatFlag, out string, stdout bool) {
	t.Helper()
	origSchema := generateSchema
	origFormat := generateFormat
	origOut := generateOut
	origStdout := generateStdout
	t.Cleanup(func() {
		generateSchema = origSchema
		generateFormat = origFormat
		generateOut = origOut
		generateStdout = origStdout
	})
	generateSchema = schema
	generateFormat = formatFlag
	generateOut = out
	generateStdout = stdout
}

func TestRunGenerate_Stdout(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "server.yaml", serverSchema)
	setGenerateFlags(t, schema, "json", "", true)

	var buf bytes.Buffer
	require.NoError(t, runGenerate(generateCmd, &buf))

	out := buf.String()
	assert.Contains(t, out, `"host": ""`)
	assert.Contains(t, out, `"port": 0`)
	assert.Contains(t, out, `"debug": false`)
}

func TestRunGenerate_WritesFile(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "server.yaml", serverSchema)
	out := filepath.Join(dir, "out", "app.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))
	setGenerateFlags(t, schema, "", out, false)

	var buf bytes.Buffer
	require.NoError(t, runGenerate(generateCmd, &buf))

	// Generated output conforms to the schema it came from
	cfg, err := loadcfg.Load(out)
	require.NoError(t, err)
	assert.Equal(t, format.TOML, cfg.Format())

	host, err := cfg.String("host")
	require.NoError(t, err)
	assert.Equal(t, "", host)
}

func TestRunGenerate_DefaultFilename(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "server.yaml", serverSchema)
	chdir(t, t.TempDir())
	setGenerateFlags(t, schema, "yaml", "", false)

	var buf bytes.Buffer
	require.NoError(t, runGenerate(generateCmd, &buf))

	_, err := os.Stat("config.yaml")
	assert.NoError(t, err)
}

func TestRunGenerate_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "server.yaml", serverSchema)
	setGenerateFlags(t, schema, "xml", "", true)

	var buf bytes.Buffer
	err := runGenerate(generateCmd, &buf)
	assert.Error(t, err)
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		outPath string
		want    format.Format
		wantErr bool
	}{
		{"flag wins", "toml", "x.json", format.TOML, false},
		{"flag case-insensitive", "YAML", "", format.YAML, false},
		{"from extension", "", "x.ini", format.INI, false},
		{"fallback json", "", "", format.JSON, false},
		{"bad flag", "xml", "", "", true},
	}

	origConfig := toolConfig
	defer func() { toolConfig = origConfig }()
	toolConfig = nil

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.flag, tt.outPath)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// chdir changes into dir for the duration of the test and restores the
// previous working directory on cleanup. It stands in for t.Chdir,
// which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Error(err)
		}
	})
}
