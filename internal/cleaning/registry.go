package cleaning

import (
	"log/slog"
	"sync/atomic"
)

// Registry holds the active rule set and lets it be swapped while requests
// are reading it.
type Registry struct {
	current atomic.Pointer[RuleSet]
	path    string
}

// NewRegistry creates a registry serving rs.
func NewRegistry(rs RuleSet) *Registry {
	r := &Registry{}
	r.Set(rs)
	return r
}

// NewFileRegistry loads rules from path and remembers it for Reload.
func NewFileRegistry(path string) (*Registry, error) {
	rs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	r := NewRegistry(rs)
	r.path = path
	return r, nil
}

// Rules returns the active rule set.
func (r *Registry) Rules() RuleSet {
	return *r.current.Load()
}

// Set replaces the active rule set.
func (r *Registry) Set(rs RuleSet) {
	r.current.Store(&rs)
}

// Path returns the backing rules file, or "" for an in-memory registry.
func (r *Registry) Path() string {
	return r.path
}

// Reload re-reads the backing file. On error the previous rules stay active.
func (r *Registry) Reload() error {
	if r.path == "" {
		return nil
	}
	rs, err := LoadFile(r.path)
	if err != nil {
		slog.Warn("Rules reload failed, keeping previous rules", "path", r.path, "error", err)
		return err
	}
	r.Set(rs)
	slog.Info("Rules reloaded", "path", r.path, "rules", len(rs))
	return nil
}
