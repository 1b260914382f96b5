package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("scss-file", "", "")
	fs.Int("tab-size", 2, "")
	fs.String("language-id", "vue", "")
	fs.StringSlice("exclude", nil, "")
	fs.Bool("respect-gitignore", true, "")
	fs.String("workspace", "", "")
	fs.Bool("verbose", false, "")
	return fs
}

func TestDefaults(t *testing.T) {
	l := New()
	require.NoError(t, l.LoadFile("/nonexistent/.scssgen.yaml"))

	cfg := l.Build()
	assert.Equal(t, "", cfg.ScssFilePath)
	assert.Equal(t, 2, cfg.TabSize)
	assert.Equal(t, "vue", cfg.LanguageID)
	assert.Equal(t, []string{"**/node_modules/**"}, cfg.Exclude)
	assert.True(t, cfg.RespectGitignore)
}

func TestConfigFileLoading(t *testing.T) {
	path := writeConfig(t, `
verbose: true

sync:
  scss-file-path: ../index.scss
  language-id: vue
  exclude:
    - "legacy/**"
  respect-gitignore: false
  workspace: /work

editor:
  tab-size: 4
`)
	l := New()
	require.NoError(t, l.LoadFile(path))

	cfg := l.Build()
	assert.Equal(t, "../index.scss", cfg.ScssFilePath)
	assert.Equal(t, 4, cfg.TabSize)
	assert.Equal(t, []string{"legacy/**"}, cfg.Exclude)
	assert.False(t, cfg.RespectGitignore)
	assert.Equal(t, "/work", cfg.WorkspaceRoot)
	assert.True(t, l.Bool("verbose"))
}

func TestInvalidConfigFile(t *testing.T) {
	path := writeConfig(t, "sync: [unclosed")
	err := New().LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config file")
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	path := writeConfig(t, `
sync:
  scss-file-path: from-file.scss
  tab-size: 4
`)
	t.Setenv("SCSSGEN_SYNC_SCSS_FILE_PATH", "from-env.scss")
	t.Setenv("SCSSGEN_SYNC_EXCLUDE", "a/**, b/**")
	t.Setenv("SCSSGEN_QUIET", "true")

	l := New()
	require.NoError(t, l.LoadFile(path))
	require.NoError(t, l.LoadEnv())

	cfg := l.Build()
	assert.Equal(t, "from-env.scss", cfg.ScssFilePath)
	assert.Equal(t, 4, cfg.TabSize)
	assert.Equal(t, []string{"a/**", "b/**"}, cfg.Exclude)
	assert.True(t, l.Bool("quiet"))
}

func TestEnvKey(t *testing.T) {
	key, _ := envKey("SCSSGEN_SYNC_SCSS_FILE_PATH", "x")
	assert.Equal(t, "sync.scss-file-path", key)

	key, _ = envKey("SCSSGEN_EDITOR_TAB_SIZE", "4")
	assert.Equal(t, "editor.tab-size", key)

	key, _ = envKey("SCSSGEN_VERBOSE", "1")
	assert.Equal(t, "verbose", key)
}

func TestSettingsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
sync:
  scss-file-path: from-file.scss
  tab-size: 8
`)
	l := New()
	require.NoError(t, l.LoadFile(path))
	require.NoError(t, l.SetSettings(map[string]interface{}{
		"scssStructureGenerate": map[string]interface{}{
			"scssFilePath": "",
		},
		"editor.tabSize": 4,
	}))

	cfg := l.Build()
	assert.Equal(t, "", cfg.ScssFilePath, "an explicit empty setting selects inline mode")
	assert.True(t, cfg.InlineMode())
	assert.Equal(t, 4, cfg.TabSize)
}

func TestSettingsReplacedWholesale(t *testing.T) {
	l := New()
	require.NoError(t, l.SetSettings(map[string]interface{}{
		"scssStructureGenerate": map[string]interface{}{"scssFilePath": "a.scss"},
	}))
	assert.Equal(t, "a.scss", l.Build().ScssFilePath)

	require.NoError(t, l.SetSettings(map[string]interface{}{}))
	assert.Equal(t, "", l.Build().ScssFilePath)
}

func TestSectionTabSizeWinsOverEditorTabSize(t *testing.T) {
	l := New()
	require.NoError(t, l.SetSettings(map[string]interface{}{
		"scssStructureGenerate": map[string]interface{}{"tabSize": 3},
		"editor":                map[string]interface{}{"tabSize": 4},
	}))
	assert.Equal(t, 3, l.Build().TabSize)
}

func TestFlagsOverrideEverything(t *testing.T) {
	path := writeConfig(t, `
sync:
  scss-file-path: from-file.scss
`)
	l := New()
	require.NoError(t, l.LoadFile(path))
	require.NoError(t, l.SetSettings(map[string]interface{}{
		"scssStructureGenerate": map[string]interface{}{"scssFilePath": "from-settings.scss"},
	}))

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--scss-file", "from-flag.scss", "--exclude", "x/**,y/**", "--verbose"}))
	require.NoError(t, l.LoadFlags(fs))

	cfg := l.Build()
	assert.Equal(t, "from-flag.scss", cfg.ScssFilePath)
	assert.Equal(t, []string{"x/**", "y/**"}, cfg.Exclude)
	assert.True(t, l.Bool("verbose"))
}

func TestUnchangedFlagsDoNotOverride(t *testing.T) {
	path := writeConfig(t, `
sync:
  tab-size: 4
  language-id: svelte
`)
	l := New()
	require.NoError(t, l.LoadFile(path))

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))
	require.NoError(t, l.LoadFlags(fs))

	cfg := l.Build()
	assert.Equal(t, 4, cfg.TabSize)
	assert.Equal(t, "svelte", cfg.LanguageID)
}

func TestWorkspaceRoot(t *testing.T) {
	l := New()
	l.SetWorkspaceRoot("/from/editor")
	assert.Equal(t, "/from/editor", l.Build().WorkspaceRoot)

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--workspace", "/from/flag"}))
	require.NoError(t, l.LoadFlags(fs))
	assert.Equal(t, "/from/flag", l.Build().WorkspaceRoot)
}
