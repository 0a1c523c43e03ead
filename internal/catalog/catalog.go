// Registry discovery and caching.
package catalog

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/vinayprograms/agentkit/logging"
	"github.com/vinayprograms/planner/internal/plan"
)

// Registry discovers capability descriptors from configured skill and
// subagent directories. Discovery results are cached per process; the cache
// is safe for concurrent reads and is only mutated by ClearCache (or the
// optional watcher, which calls it).
type Registry struct {
	skillPaths    []string
	subagentPaths []string
	logger        *logging.Logger

	mu     sync.RWMutex
	skills []plan.ToolDescriptor
	agents []plan.ToolDescriptor
	cached bool
}

// NewRegistry creates a registry over the given manifest directories. Each
// path is a directory whose immediate subdirectories hold one TOOL.md each.
func NewRegistry(skillPaths, subagentPaths []string) *Registry {
	return &Registry{
		skillPaths:    skillPaths,
		subagentPaths: subagentPaths,
		logger:        logging.New().WithComponent("catalog"),
	}
}

// DiscoverAll returns every available capability, with atomic skills that a
// discovered subagent supersedes (same output artifact) suppressed.
func (r *Registry) DiscoverAll() ([]plan.ToolDescriptor, error) {
	skills, agents, err := r.load()
	if err != nil {
		return nil, err
	}

	covered := make(map[string]bool, len(agents))
	for _, a := range agents {
		covered[a.OutputArtifact] = true
	}

	all := make([]plan.ToolDescriptor, 0, len(skills)+len(agents))
	for _, s := range skills {
		if covered[s.OutputArtifact] {
			continue
		}
		all = append(all, s)
	}
	all = append(all, agents...)
	return all, nil
}

// DiscoverSkills returns the atomic skills, unfiltered.
func (r *Registry) DiscoverSkills() ([]plan.ToolDescriptor, error) {
	skills, _, err := r.load()
	return skills, err
}

// DiscoverSubagents returns the composite subagents.
func (r *Registry) DiscoverSubagents() ([]plan.ToolDescriptor, error) {
	_, agents, err := r.load()
	return agents, err
}

// ClearCache drops the cached discovery result. The next discovery call
// re-reads the manifest directories.
func (r *Registry) ClearCache() {
	r.mu.Lock()
	r.cached = false
	r.skills = nil
	r.agents = nil
	r.mu.Unlock()
	r.logger.Debug("catalog cache cleared", nil)
}

// load returns the cached descriptors, reading the manifest directories on
// first use or after invalidation.
func (r *Registry) load() (skills, agents []plan.ToolDescriptor, err error) {
	r.mu.RLock()
	if r.cached {
		skills, agents = r.skills, r.agents
		r.mu.RUnlock()
		return skills, agents, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cached {
		return r.skills, r.agents, nil
	}

	skills, err = r.discoverKind(r.skillPaths, plan.ToolKindSkill)
	if err != nil {
		return nil, nil, err
	}
	agents, err = r.discoverKind(r.subagentPaths, plan.ToolKindSubagent)
	if err != nil {
		return nil, nil, err
	}

	r.skills = skills
	r.agents = agents
	r.cached = true
	r.logger.Info("catalog discovered", map[string]interface{}{
		"skills":    len(skills),
		"subagents": len(agents),
	})
	return skills, agents, nil
}

// discoverKind scans each path's subdirectories for manifests of one kind.
// Directories without a manifest, or with a manifest that fails to parse or
// declares the other kind, are skipped.
func (r *Registry) discoverKind(paths []string, kind plan.ToolKind) ([]plan.ToolDescriptor, error) {
	var tools []plan.ToolDescriptor
	for _, dir := range paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			toolDir := filepath.Join(dir, entry.Name())
			if _, err := os.Stat(filepath.Join(toolDir, ManifestFile)); os.IsNotExist(err) {
				continue
			}

			m, err := Load(toolDir)
			if err != nil {
				r.logger.Warn("skipping invalid manifest", map[string]interface{}{
					"dir":   toolDir,
					"error": err.Error(),
				})
				continue
			}
			if m.Kind != string(kind) {
				continue
			}
			tools = append(tools, m.Descriptor())
		}
	}
	return tools, nil
}
