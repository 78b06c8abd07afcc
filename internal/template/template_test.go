package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullTemplate = `#define BUILD_PATH "{#BUILD_PATH}"
[Setup]
AppName={PRODUCT_NAME}
AppVersion={VERSION}
AppPublisher={COMPANY_NAME}
SetupIconFile={SETUP_ICON}
LicenseFile={EULA_FILE}
DefaultDirName={autopf}\{PRODUCT_NAME}
OutputDir=OutputInstaller

[Files]
Source: "{#BUILD_PATH}\*"; DestDir: "{app}"; Flags: recursesubdirs
`

func demoTokens() TokenMap {
	return NewTokenMap(Values{
		ProductName: "Demo",
		CompanyName: "Acme",
		Version:     "1.0",
		BuildPath:   `C:\Work\Builds\Demo_1.0`,
	})
}

func TestTokenMarker(t *testing.T) {
	tests := []struct {
		token Token
		want  string
	}{
		{ProductName, "{PRODUCT_NAME}"},
		{CompanyName, "{COMPANY_NAME}"},
		{Version, "{VERSION}"},
		{BuildPath, "{#BUILD_PATH}"},
		{SetupIcon, "{SETUP_ICON}"},
		{EULAFile, "{EULA_FILE}"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.token.Marker())
	}
}

func TestNewTokenMap_AlwaysHasSixKeys(t *testing.T) {
	tokens := NewTokenMap(Values{})
	assert.Len(t, tokens, 6)

	for _, tok := range Tokens {
		value, ok := tokens[tok]
		assert.True(t, ok, "token %s missing", tok)
		assert.Empty(t, value)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		tokens   TokenMap
		want     string
	}{
		{
			name:     "all markers",
			template: "{PRODUCT_NAME}|{COMPANY_NAME}|{VERSION}|{#BUILD_PATH}|{SETUP_ICON}|{EULA_FILE}",
			tokens: NewTokenMap(Values{
				ProductName: "Demo",
				CompanyName: "Acme",
				Version:     "1.0",
				BuildPath:   "/b",
				SetupIcon:   "a.ico",
				EULAFile:    "eula.txt",
			}),
			want: "Demo|Acme|1.0|/b|a.ico|eula.txt",
		},
		{
			name:     "repeated markers",
			template: "{PRODUCT_NAME}-{PRODUCT_NAME}",
			tokens:   demoTokens(),
			want:     "Demo-Demo",
		},
		{
			name:     "disabled options render empty",
			template: "Icon={SETUP_ICON};Eula={EULA_FILE}",
			tokens:   demoTokens(),
			want:     "Icon=;Eula=",
		},
		{
			name:     "no markers",
			template: "[Setup]\nAppName=Static\n",
			tokens:   demoTokens(),
			want:     "[Setup]\nAppName=Static\n",
		},
		{
			name:     "unknown markers pass through",
			template: "{PRODUCT_NAME} {UNKNOWN} {app} {#Define}",
			tokens:   demoTokens(),
			want:     "Demo {UNKNOWN} {app} {#Define}",
		},
		{
			name:     "marker boundaries respected",
			template: "{PRODUCT_NAME_EXTRA} {PRODUCT_NAME}",
			tokens:   demoTokens(),
			want:     "{PRODUCT_NAME_EXTRA} Demo",
		},
		{
			name:     "BUILD_PATH needs the preprocessor form",
			template: "{BUILD_PATH} {#BUILD_PATH}",
			tokens:   NewTokenMap(Values{BuildPath: "/b"}),
			want:     "{BUILD_PATH} /b",
		},
		{
			name:     "values containing markers are not substituted again",
			template: "{PRODUCT_NAME}/{COMPANY_NAME}",
			tokens:   NewTokenMap(Values{ProductName: "{COMPANY_NAME}", CompanyName: "{PRODUCT_NAME}"}),
			want:     "{COMPANY_NAME}/{PRODUCT_NAME}",
		},
		{
			name:     "missing tokens render empty",
			template: "[{VERSION}]",
			tokens:   TokenMap{ProductName: "Demo"},
			want:     "[]",
		},
		{
			name:     "empty template",
			template: "",
			tokens:   demoTokens(),
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.template, tt.tokens))
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	tokens := demoTokens()

	first := Render(fullTemplate, tokens)
	second := Render(fullTemplate, tokens)
	assert.Equal(t, first, second)

	// Rendering the output again changes nothing once all markers are consumed
	assert.Equal(t, first, Render(first, tokens))
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "BuildScriptTemplate.iss")
	scriptPath := filepath.Join(dir, "BuildScript.iss")
	require.NoError(t, os.WriteFile(templatePath, []byte(fullTemplate), 0o644))

	// A stale script from a previous run is overwritten
	require.NoError(t, os.WriteFile(scriptPath, []byte("stale content that is much longer than nothing"), 0o644))

	rendered, err := RenderFile(templatePath, scriptPath, demoTokens())
	require.NoError(t, err)

	data, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	assert.Equal(t, rendered, string(data))

	assert.Contains(t, rendered, "AppName=Demo")
	assert.Contains(t, rendered, "AppPublisher=Acme")
	assert.Contains(t, rendered, "AppVersion=1.0")
	assert.Contains(t, rendered, `Source: "C:\Work\Builds\Demo_1.0\*"`)
	assert.Contains(t, rendered, "SetupIconFile=\n")
	assert.Contains(t, rendered, "LicenseFile=\n")
	assert.NotContains(t, rendered, "stale")

	// The template itself is untouched
	original, err := os.ReadFile(templatePath)
	require.NoError(t, err)
	assert.Equal(t, fullTemplate, string(original))
}

func TestRenderFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := RenderFile(filepath.Join(dir, "missing.iss"), filepath.Join(dir, "out.iss"), demoTokens())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read template")

	templatePath := filepath.Join(dir, "BuildScriptTemplate.iss")
	require.NoError(t, os.WriteFile(templatePath, []byte("x"), 0o644))

	_, err = RenderFile(templatePath, filepath.Join(dir, "no-such-dir", "out.iss"), demoTokens())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write installer script")
}

func TestUnconsumed(t *testing.T) {
	assert.Empty(t, Unconsumed(Render(fullTemplate, demoTokens())))

	got := Unconsumed("{PRODUCT_NAME} {app} {UNKNOWN} {#BUILD_PATH} {UNKNOWN} {#MyDefine}")
	assert.Equal(t, []string{"{PRODUCT_NAME}", "{UNKNOWN}", "{#BUILD_PATH}"}, got)
}
