package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/swatch/internal/adapters/config"
	"go.trai.ch/swatch/internal/adapters/fs"
	"go.trai.ch/swatch/internal/core/domain"
	"go.trai.ch/swatch/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log, fs.NewHasher()), log
}

func resolve(t *testing.T, theme *domain.Theme, component, slot string, state domain.VariantState) string {
	t.Helper()
	res, ok := theme.Resolve(component, slot, state)
	require.True(t, ok, "component %q should have overrides", component)
	return res.String()
}

func TestLoad_Builtin(t *testing.T) {
	loader, _ := newLoader(t)

	theme, err := loader.Load("")
	require.NoError(t, err)

	assert.Equal(t, domain.BuiltinSource, theme.Source().Path)
	assert.Len(t, theme.Source().Fingerprint, 16)
	assert.Empty(t, theme.Colors())
	assert.Equal(t, []string{
		"form", "input", "selectMenu", "inputNumber", "table",
		"formField", "tabs", "checkbox", "card",
	}, theme.ComponentNames())

	assert.Equal(t, "space-y-3", resolve(t, theme, "form", "", nil))
	assert.Equal(t, "w-full", resolve(t, theme, "input", "root", nil))
	assert.Equal(t, "rounded-[16px]", resolve(t, theme, "card", "root", nil))
	assert.Equal(t, "!whitespace-normal", resolve(t, theme, "table", "td", nil))
	assert.Equal(t, "custom-options-group w-full", resolve(t, theme, "selectMenu", "item", nil))

	input, ok := theme.Component("input")
	require.True(t, ok)
	assert.Equal(t, domain.VariantState{"size": "xl"}, input.DefaultVariants())
}

func TestLoad_Builtin_CompoundRules(t *testing.T) {
	loader, _ := newLoader(t)

	theme, err := loader.Load("")
	require.NoError(t, err)

	assert.Empty(t, resolve(t, theme, "table", "thead", nil))
	assert.Empty(t, resolve(t, theme, "table", "thead", domain.VariantState{"loading": "true"}))
	assert.Equal(t, "after:bg-blue-300", resolve(t, theme, "table", "thead",
		domain.VariantState{"loading": "true", "loadingColor": "primary"}))

	assert.Equal(t, "secondery-color", resolve(t, theme, "checkbox", "base",
		domain.VariantState{"color": "primary", "checked": "true"}))

	assert.Equal(t, "after:content-[''] after:ms-0 after:text-(--ui-error)",
		resolve(t, theme, "formField", "label", domain.VariantState{"required": "true"}))
	assert.Empty(t, resolve(t, theme, "formField", "label", nil))
}

func TestLoad_Builtin_UnknownComponent(t *testing.T) {
	loader, _ := newLoader(t)

	theme, err := loader.Load("")
	require.NoError(t, err)

	res, ok := theme.Resolve("badge", "", domain.VariantState{"color": "primary"})
	assert.False(t, ok)
	assert.Empty(t, res.Classes)
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
ui:
  colors:
    primary: orange
    neutral: zinc
  button:
    base: [px-4, py-2]
    variants:
      size:
        sm: text-sm
        lg:
          base: text-lg
          icon: size-6
    defaultVariants:
      size: sm
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loader, _ := newLoader(t)
	theme, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, theme.Source().Path)
	assert.Equal(t, map[string]string{"primary": "orange", "neutral": "zinc"}, theme.Colors())
	assert.Equal(t, "px-4 py-2 text-sm", resolve(t, theme, "button", "", nil))
	assert.Equal(t, "px-4 py-2 text-lg", resolve(t, theme, "button", "", domain.VariantState{"size": "lg"}))
	assert.Equal(t, "size-6", resolve(t, theme, "button", "icon", domain.VariantState{"size": "lg"}))
}

func TestLoad_NormalizesBooleans(t *testing.T) {
	content := `
ui:
  table:
    variants:
      striped:
        True: even:bg-gray-50
        FALSE: ""
    defaultVariants:
      striped: TRUE
    compoundVariants:
      - loading: True
        class:
          thead: a
      - loading: [False]
        class:
          thead: b
`
	fsys := fstest.MapFS{"theme.yaml": &fstest.MapFile{Data: []byte(content)}}

	loader, _ := newLoader(t)
	loader.FS = config.NewMapFSAdapter("/repo", fsys)

	theme, err := loader.Load("/repo/theme.yaml")
	require.NoError(t, err)

	assert.Equal(t, "a", resolve(t, theme, "table", "thead", domain.VariantState{"loading": domain.Bool(true)}))
	assert.Equal(t, "b", resolve(t, theme, "table", "thead", domain.VariantState{"loading": domain.Bool(false)}))
	assert.Equal(t, "even:bg-gray-50", resolve(t, theme, "table", "", nil))
	assert.Empty(t, resolve(t, theme, "table", "", domain.VariantState{"striped": domain.Bool(false)}))
}

func TestLoad_JSONC(t *testing.T) {
	content := `{
  // comments and trailing commas are allowed
  "ui": {
    "card": {
      "slots": { "root": "rounded-[16px]", },
    },
  },
}`
	fsys := fstest.MapFS{"theme.jsonc": &fstest.MapFile{Data: []byte(content)}}

	loader, _ := newLoader(t)
	loader.FS = config.NewMapFSAdapter("/repo", fsys)

	theme, err := loader.Load("/repo/theme.jsonc")
	require.NoError(t, err)
	assert.Equal(t, "rounded-[16px]", resolve(t, theme, "card", "root", nil))
}

func TestLoad_SameContentSameFingerprint(t *testing.T) {
	data := []byte("ui:\n  card:\n    slots:\n      root: rounded\n")
	fsys := fstest.MapFS{
		"a.yaml": &fstest.MapFile{Data: data},
		"b.yml":  &fstest.MapFile{Data: data},
	}

	loader, _ := newLoader(t)
	loader.FS = config.NewMapFSAdapter("/repo", fsys)

	a, err := loader.Load("/repo/a.yaml")
	require.NoError(t, err)
	b, err := loader.Load("/repo/b.yml")
	require.NoError(t, err)

	assert.Equal(t, a.Source().Fingerprint, b.Source().Fingerprint)
	assert.NotEqual(t, a.Source().Path, b.Source().Path)
}

func TestLoad_WarnsOnEmptyComponent(t *testing.T) {
	loader, log := newLoader(t)
	loader.FS = config.NewMapFSAdapter("/repo", fstest.MapFS{
		"theme.yaml": &fstest.MapFile{Data: []byte("ui:\n  badge:\n  card:\n    slots:\n      root: rounded\n")},
	})

	log.EXPECT().Warn("component 'badge' declares no overrides")

	theme, err := loader.Load("/repo/theme.yaml")
	require.NoError(t, err)

	res, ok := theme.Resolve("badge", "", nil)
	assert.True(t, ok)
	assert.Empty(t, res.Classes)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		content  string
		contains []string
	}{
		{
			name:     "Unsupported format",
			path:     "/repo/theme.toml",
			content:  "ui = {}",
			contains: []string{domain.ErrUnsupportedFormat.Error()},
		},
		{
			name:     "Malformed YAML",
			path:     "/repo/theme.yaml",
			content:  "ui:\n  card: [unclosed\n",
			contains: []string{domain.ErrConfigParseFailed.Error()},
		},
		{
			name:     "Missing ui root",
			path:     "/repo/theme.yaml",
			content:  "theme:\n  card: {}\n",
			contains: []string{domain.ErrThemeInvalid.Error(), domain.ErrMissingUIRoot.Error()},
		},
		{
			name:     "Empty document",
			path:     "/repo/theme.yaml",
			content:  "",
			contains: []string{domain.ErrInvalidDocument.Error()},
		},
		{
			name:     "Duplicate component",
			path:     "/repo/theme.yaml",
			content:  "ui:\n  card:\n    base: a\n  card:\n    base: b\n",
			contains: []string{domain.ErrDuplicateComponent.Error()},
		},
		{
			name:     "Duplicate colors",
			path:     "/repo/theme.yaml",
			content:  "ui:\n  colors:\n    primary: orange\n  colors:\n    primary: blue\n",
			contains: []string{domain.ErrDuplicateKey.Error()},
		},
		{
			name:     "Unknown field",
			path:     "/repo/theme.yaml",
			content:  "ui:\n  card:\n    colour: red\n",
			contains: []string{domain.ErrUnknownField.Error()},
		},
		{
			name:    "Compound rule without condition",
			path:    "/repo/theme.yaml",
			content: "ui:\n  card:\n    compoundVariants:\n      - class: ring\n",
			contains: []string{
				domain.ErrRuleMissingCondition.Error(),
			},
		},
		{
			name:    "Compound rule without class",
			path:    "/repo/theme.yaml",
			content: "ui:\n  card:\n    compoundVariants:\n      - color: primary\n",
			contains: []string{
				domain.ErrRuleMissingClass.Error(),
			},
		},
		{
			name:     "Duplicate slot",
			path:     "/repo/theme.yaml",
			content:  "ui:\n  card:\n    base: a\n    slots:\n      base: b\n",
			contains: []string{domain.ErrDuplicateSlot.Error()},
		},
		{
			name:     "Invalid JSON",
			path:     "/repo/theme.json",
			content:  `{"ui": {"card": }`,
			contains: []string{domain.ErrConfigParseFailed.Error()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			loader.FS = config.NewMapFSAdapter("/repo", fstest.MapFS{
				filepath.Base(tt.path): &fstest.MapFile{Data: []byte(tt.content)},
			})

			theme, err := loader.Load(tt.path)
			require.Error(t, err)
			assert.Nil(t, theme)
			for _, want := range tt.contains {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}

func TestLoad_ReadError(t *testing.T) {
	loader, _ := newLoader(t)
	loader.FS = config.NewMapFSAdapter("/repo", fstest.MapFS{})

	_, err := loader.Load("/repo/missing.yaml")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestLoad_ReportsAllProblems(t *testing.T) {
	content := `
ui:
  card:
    colour: red
  button:
    compoundVariants:
      - class: ring
  badge:
    slots:
      root: {nested: true}
`
	loader, _ := newLoader(t)
	loader.FS = config.NewMapFSAdapter("/repo", fstest.MapFS{
		"theme.yaml": &fstest.MapFile{Data: []byte(content)},
	})

	_, err := loader.Load("/repo/theme.yaml")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownField.Error())
	assert.ErrorContains(t, err, domain.ErrInvalidClassList.Error())
}

func TestBuiltin_ReturnsCopy(t *testing.T) {
	a := config.Builtin()
	require.NotEmpty(t, a)
	a[0] = 'x'
	assert.NotEqual(t, a[0], config.Builtin()[0])
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want config.Format
	}{
		{"theme.yaml", config.FormatYAML},
		{"theme.YML", config.FormatYAML},
		{"theme.json", config.FormatJSON},
		{"app.config.jsonc", config.FormatJSONC},
	}
	for _, tt := range tests {
		got, err := config.FormatOf(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := config.FormatOf("theme.toml")
	assert.ErrorContains(t, err, domain.ErrUnsupportedFormat.Error())
}
