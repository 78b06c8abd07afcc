// Package template substitutes build values into an Inno Setup script template.
//
// Substitution is purely textual: the installer script syntax is never parsed.
// Each token has a fixed marker (e.g. {PRODUCT_NAME}); every literal occurrence
// of a marker is replaced by the token's value, and anything else, including
// unknown markers, passes through unchanged.
//
// All markers are replaced in one left-to-right pass. A value that happens to
// contain another marker's text is copied to the output as-is and never
// substituted again, so the result does not depend on replacement order.
package template

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Token names a value substituted into the template
type Token string

const (
	ProductName Token = "PRODUCT_NAME"
	CompanyName Token = "COMPANY_NAME"
	Version     Token = "VERSION"
	BuildPath   Token = "BUILD_PATH"
	SetupIcon   Token = "SETUP_ICON"
	EULAFile    Token = "EULA_FILE"
)

// Tokens lists every token in substitution priority order
var Tokens = []Token{ProductName, CompanyName, Version, BuildPath, SetupIcon, EULAFile}

// Marker returns the literal text that stands for the token in a template.
// BUILD_PATH uses the Inno Setup preprocessor form {#BUILD_PATH}.
func (t Token) Marker() string {
	if t == BuildPath {
		return "{#" + string(t) + "}"
	}

	return "{" + string(t) + "}"
}

// TokenMap holds the resolved value of every token. All six tokens are always
// present; a disabled option maps to the empty string.
type TokenMap map[Token]string

// Values are the inputs used to build a TokenMap
type Values struct {
	ProductName string
	CompanyName string
	Version     string
	BuildPath   string
	SetupIcon   string
	EULAFile    string
}

// NewTokenMap builds a complete TokenMap
func NewTokenMap(v Values) TokenMap {
	return TokenMap{
		ProductName: v.ProductName,
		CompanyName: v.CompanyName,
		Version:     v.Version,
		BuildPath:   v.BuildPath,
		SetupIcon:   v.SetupIcon,
		EULAFile:    v.EULAFile,
	}
}

// Render replaces every marker in text with its value from tokens.
// Tokens missing from the map are replaced with the empty string.
func Render(text string, tokens TokenMap) string {
	pairs := make([]string, 0, 2*len(Tokens))
	for _, t := range Tokens {
		pairs = append(pairs, t.Marker(), tokens[t])
	}

	return strings.NewReplacer(pairs...).Replace(text)
}

// RenderFile renders the template at templatePath and writes the result to
// scriptPath, replacing any previous script.
func RenderFile(templatePath, scriptPath string, tokens TokenMap) (string, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}

	rendered := Render(string(data), tokens)

	if err := os.WriteFile(scriptPath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("failed to write installer script: %w", err)
	}

	return rendered, nil
}

var markerPattern = regexp.MustCompile(`\{#?[A-Z][A-Z0-9_]*\}`)

// Unconsumed returns the distinct upper-case markers still present in text, in
// order of first appearance. Inno Setup constants such as {app} are lower
// case and are not reported.
func Unconsumed(text string) []string {
	var found []string
	seen := make(map[string]bool)

	for _, m := range markerPattern.FindAllString(text, -1) {
		if seen[m] {
			continue
		}

		seen[m] = true
		found = append(found, m)
	}

	return found
}
