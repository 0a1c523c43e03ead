// Package catalog discovers the capabilities available to the planner.
// Capabilities live on disk as directories containing a TOOL.md manifest:
// YAML frontmatter describing the capability, followed by free-form
// instructions the planner never reads.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vinayprograms/planner/internal/plan"
)

// ManifestFile is the manifest name inside each capability directory.
const ManifestFile = "TOOL.md"

// Manifest is a parsed capability manifest.
type Manifest struct {
	ID             string            `yaml:"id"`
	Kind           string            `yaml:"kind"`
	Label          string            `yaml:"label"`
	Description    string            `yaml:"description"`
	InputArtifacts []string          `yaml:"input-artifacts,omitempty"`
	OutputArtifact string            `yaml:"output-artifact"`
	Capabilities   []string          `yaml:"capabilities,omitempty"`
	Section        string            `yaml:"section,omitempty"`
	Version        string            `yaml:"version,omitempty"`
	Metadata       map[string]string `yaml:"metadata,omitempty"`

	// From content
	Instructions string `yaml:"-"`

	// Location
	Path string `yaml:"-"`
}

// Load loads a manifest from a capability directory. The directory name
// must match the final segment of the declared id.
func Load(dir string) (*Manifest, error) {
	content, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}

	m, err := Parse(string(content))
	if err != nil {
		return nil, err
	}
	m.Path = dir

	dirName := filepath.Base(dir)
	if lastSegment(m.ID) != dirName {
		return nil, fmt.Errorf("tool id %q does not match directory name %q", m.ID, dirName)
	}
	return m, nil
}

// Parse parses TOOL.md content.
func Parse(content string) (*Manifest, error) {
	frontmatter, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	m := &Manifest{}
	if err := yaml.Unmarshal([]byte(frontmatter), m); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}

	if m.ID == "" {
		return nil, fmt.Errorf("missing required field: id")
	}
	if m.Label == "" {
		return nil, fmt.Errorf("missing required field: label")
	}
	if m.Description == "" {
		return nil, fmt.Errorf("missing required field: description")
	}
	if m.OutputArtifact == "" {
		return nil, fmt.Errorf("missing required field: output-artifact")
	}
	switch m.Kind {
	case string(plan.ToolKindSkill), string(plan.ToolKindSubagent):
	case "":
		return nil, fmt.Errorf("missing required field: kind")
	default:
		return nil, fmt.Errorf("unknown kind %q", m.Kind)
	}
	if err := validateID(m.ID); err != nil {
		return nil, err
	}

	m.Instructions = strings.TrimSpace(body)
	return m, nil
}

// Descriptor converts the manifest to the immutable descriptor handed to
// the planning engine.
func (m *Manifest) Descriptor() plan.ToolDescriptor {
	return plan.ToolDescriptor{
		ID:             m.ID,
		Kind:           plan.ToolKind(m.Kind),
		Label:          m.Label,
		Description:    m.Description,
		InputArtifacts: append([]string{}, m.InputArtifacts...),
		OutputArtifact: m.OutputArtifact,
		Capabilities:   append([]string{}, m.Capabilities...),
		Metadata: plan.ToolMetadata{
			Section: m.Section,
			Version: m.Version,
		},
	}
}

// splitFrontmatter extracts YAML frontmatter from markdown.
func splitFrontmatter(content string) (frontmatter, body string, err error) {
	lines := strings.Split(content, "\n")

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", "", fmt.Errorf("missing frontmatter delimiter")
	}

	var fmLines []string
	var bodyStart int
	inFrontmatter := true

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			inFrontmatter = false
			bodyStart = i + 1
			break
		}
		if inFrontmatter {
			fmLines = append(fmLines, lines[i])
		}
	}

	if inFrontmatter {
		return "", "", fmt.Errorf("unclosed frontmatter")
	}

	frontmatter = strings.Join(fmLines, "\n")
	if bodyStart < len(lines) {
		body = strings.Join(lines[bodyStart:], "\n")
	}

	return frontmatter, body, nil
}

// validateID validates a tool id: dot-separated lowercase segments.
func validateID(id string) error {
	if len(id) == 0 || len(id) > 128 {
		return fmt.Errorf("id must be 1-128 characters")
	}
	for _, segment := range strings.Split(id, ".") {
		if segment == "" {
			return fmt.Errorf("id cannot contain empty segments")
		}
		for _, r := range segment {
			if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
				return fmt.Errorf("id segments can only contain lowercase letters, numbers, and hyphens")
			}
		}
	}
	return nil
}

// lastSegment returns the final dot-separated segment of an id.
func lastSegment(id string) string {
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		return id[i+1:]
	}
	return id
}
