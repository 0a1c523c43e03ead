package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const overviewManifest = `---
id: prd.write-overview
kind: skill
label: Write overview
description: Drafts the overview section of a product document.
input-artifacts:
  - context-summary
output-artifact: prd-section
section: overview
---

Write the overview section based on the context summary.
`

func writeManifest(t *testing.T, root, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestParse_Manifest(t *testing.T) {
	m, err := Parse(overviewManifest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID != "prd.write-overview" {
		t.Errorf("expected id 'prd.write-overview', got %q", m.ID)
	}
	if m.Section != "overview" {
		t.Errorf("expected section 'overview', got %q", m.Section)
	}
	if !strings.Contains(m.Instructions, "Write the overview section") {
		t.Errorf("expected instructions from body, got %q", m.Instructions)
	}

	d := m.Descriptor()
	if d.Metadata.Section != "overview" {
		t.Errorf("expected descriptor section 'overview', got %q", d.Metadata.Section)
	}
	if len(d.InputArtifacts) != 1 || d.InputArtifacts[0] != "context-summary" {
		t.Errorf("unexpected input artifacts %v", d.InputArtifacts)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no frontmatter", "just some text", "missing frontmatter"},
		{"unclosed frontmatter", "---\nid: a", "unclosed frontmatter"},
		{"missing id", "---\nkind: skill\nlabel: L\ndescription: D\noutput-artifact: x\n---\n", "missing required field: id"},
		{"missing output", "---\nid: a\nkind: skill\nlabel: L\ndescription: D\n---\n", "missing required field: output-artifact"},
		{"bad kind", "---\nid: a\nkind: wizard\nlabel: L\ndescription: D\noutput-artifact: x\n---\n", `unknown kind "wizard"`},
		{"bad id", "---\nid: A.B\nkind: skill\nlabel: L\ndescription: D\noutput-artifact: x\n---\n", "lowercase"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.content)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_DirectoryNameMismatch(t *testing.T) {
	root := t.TempDir()
	dir := writeManifest(t, root, "wrong-name", overviewManifest)
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "does not match directory name") {
		t.Errorf("expected directory name mismatch error, got %v", err)
	}
}

func TestRegistry_Discovery(t *testing.T) {
	skills := t.TempDir()
	agents := t.TempDir()
	writeManifest(t, skills, "write-overview", overviewManifest)
	writeManifest(t, skills, "context-analysis", `---
id: prd.context-analysis
kind: skill
label: Analyze context
description: Summarizes the request context.
output-artifact: context-summary
---
`)
	writeManifest(t, agents, "author", `---
id: prd.author
kind: subagent
label: Document author
description: Produces a complete document end to end.
output-artifact: prd-section
---
`)

	r := NewRegistry([]string{skills}, []string{agents})

	all, err := r.DiscoverAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The author subagent produces prd-section, so the write-overview skill
	// is suppressed.
	if len(all) != 2 {
		t.Fatalf("expected 2 tools after supersession, got %d: %+v", len(all), all)
	}
	for _, tool := range all {
		if tool.ID == "prd.write-overview" {
			t.Error("expected superseded skill to be suppressed")
		}
	}

	unfiltered, err := r.DiscoverSkills()
	if err != nil {
		t.Fatal(err)
	}
	if len(unfiltered) != 2 {
		t.Errorf("expected 2 skills unfiltered, got %d", len(unfiltered))
	}
}

func TestRegistry_SkipsInvalidManifests(t *testing.T) {
	skills := t.TempDir()
	writeManifest(t, skills, "context-analysis", `---
id: prd.context-analysis
kind: skill
label: Analyze context
description: Summarizes the request context.
output-artifact: context-summary
---
`)
	writeManifest(t, skills, "broken", "not a manifest at all")

	r := NewRegistry([]string{skills}, nil)
	tools, err := r.DiscoverSkills()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tools) != 1 {
		t.Errorf("expected broken manifest skipped, got %d tools", len(tools))
	}
}

func TestRegistry_CacheInvalidation(t *testing.T) {
	skills := t.TempDir()
	r := NewRegistry([]string{skills}, nil)

	tools, err := r.DiscoverSkills()
	if err != nil {
		t.Fatal(err)
	}
	if len(tools) != 0 {
		t.Fatalf("expected empty catalog, got %d", len(tools))
	}

	writeManifest(t, skills, "context-analysis", `---
id: prd.context-analysis
kind: skill
label: Analyze context
description: Summarizes the request context.
output-artifact: context-summary
---
`)

	// Cached result still empty until invalidated.
	tools, _ = r.DiscoverSkills()
	if len(tools) != 0 {
		t.Fatalf("expected cached empty result, got %d", len(tools))
	}

	r.ClearCache()
	tools, err = r.DiscoverSkills()
	if err != nil {
		t.Fatal(err)
	}
	if len(tools) != 1 {
		t.Errorf("expected new manifest after invalidation, got %d", len(tools))
	}
}

func TestRegistry_MissingDirectory(t *testing.T) {
	r := NewRegistry([]string{filepath.Join(t.TempDir(), "does-not-exist")}, nil)
	tools, err := r.DiscoverSkills()
	if err != nil {
		t.Fatalf("expected missing directory to be skipped, got %v", err)
	}
	if len(tools) != 0 {
		t.Errorf("expected no tools, got %d", len(tools))
	}
}
