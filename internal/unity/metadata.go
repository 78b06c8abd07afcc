// Package unity reads Unity project settings and drives the Unity editor's
// command-line player build.
package unity

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	projectSettingsFile = "ProjectSettings/ProjectSettings.asset"
	buildSettingsFile   = "ProjectSettings/EditorBuildSettings.asset"
)

// ProjectMetadata is a read-only snapshot of the project values used in a build
type ProjectMetadata struct {
	ProductName string
	Version     string
	CompanyName string

	// Enabled scenes, in build settings order
	Scenes []string
}

// Validate checks that the values needed to name the build are present
func (m ProjectMetadata) Validate() error {
	if m.ProductName == "" {
		return fmt.Errorf("product name not specified")
	}

	if m.Version == "" {
		return fmt.Errorf("version not specified")
	}

	return nil
}

// WithOverrides returns a copy with every non-empty override applied
func (m ProjectMetadata) WithOverrides(product, company, version string) ProjectMetadata {
	if product != "" {
		m.ProductName = product
	}

	if company != "" {
		m.CompanyName = company
	}

	if version != "" {
		m.Version = version
	}

	m.Scenes = append([]string(nil), m.Scenes...)

	return m
}

type buildSettings struct {
	EditorBuildSettings struct {
		Scenes []struct {
			Enabled int    `yaml:"enabled"`
			Path    string `yaml:"path"`
		} `yaml:"m_Scenes"`
	} `yaml:"EditorBuildSettings"`
}

// LoadMetadata reads player and build settings from a Unity project directory
func LoadMetadata(projectPath string) (ProjectMetadata, error) {
	var meta ProjectMetadata

	player, err := readAsset(filepath.Join(projectPath, projectSettingsFile))
	if err != nil {
		return meta, err
	}

	fields := map[string]*string{
		"$.PlayerSettings.productName":   &meta.ProductName,
		"$.PlayerSettings.companyName":   &meta.CompanyName,
		"$.PlayerSettings.bundleVersion": &meta.Version,
	}

	for query, dst := range fields {
		value, err := scalarAt(player, query)
		if err != nil {
			return meta, fmt.Errorf("failed to read %s: %w", query, err)
		}

		*dst = value
	}

	scenes, err := readAsset(filepath.Join(projectPath, buildSettingsFile))
	if err != nil {
		return meta, err
	}

	var settings buildSettings
	if err := yaml.Unmarshal(scenes, &settings); err != nil {
		return meta, fmt.Errorf("failed to parse build settings: %w", err)
	}

	for _, scene := range settings.EditorBuildSettings.Scenes {
		if scene.Enabled != 0 && scene.Path != "" {
			meta.Scenes = append(meta.Scenes, scene.Path)
		}
	}

	return meta, nil
}

// readAsset reads a Unity serialized asset and strips the YAML directives and
// Unity-specific document tags so it parses as plain YAML
func readAsset(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var out bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "%") || strings.HasPrefix(line, "---") {
			continue
		}

		out.WriteString(line)
		out.WriteByte('\n')
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	return out.Bytes(), nil
}

// scalarAt returns the literal text of the scalar at query. Values such as
// bundleVersion 1.10 are kept verbatim rather than decoded as numbers.
func scalarAt(data []byte, query string) (string, error) {
	path, err := yaml.PathString(query)
	if err != nil {
		return "", err
	}

	node, err := path.ReadNode(bytes.NewReader(data))
	if errors.Is(err, yaml.ErrNotFoundNode) {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	if node == nil || node.GetToken() == nil {
		return "", nil
	}

	return node.GetToken().Value, nil
}
