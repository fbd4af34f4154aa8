package clean

import (
	"slices"

	"github.com/lakshaymaurya-felt/devsweep/internal/config"
)

// Selection is the outcome of filtering the catalogue.
type Selection struct {
	// Tasks is the ordered list to run.
	Tasks []Task
	// Unknown lists names from Only or Skip that match no task, in the
	// order given.
	Unknown []string
	// OutOfProfile lists names from Only that exist but sit above the
	// selected profile.
	OutOfProfile []string
}

// Select resolves opts against catalogue: the profile picks the base set,
// Only keeps names from it, then Skip drops names. Catalogue order is kept.
func Select(catalogue []Task, opts config.Options) Selection {
	var sel Selection

	known := make(map[string]Task, len(catalogue))
	for _, t := range catalogue {
		known[t.Name()] = t
	}
	seen := make(map[string]bool)
	for _, name := range append(slices.Clone(opts.Only), opts.Skip...) {
		if _, ok := known[name]; !ok && !seen[name] {
			seen[name] = true
			sel.Unknown = append(sel.Unknown, name)
		}
	}
	for _, name := range opts.Only {
		if t, ok := known[name]; ok && !opts.Profile.Includes(t.MinProfile()) {
			sel.OutOfProfile = append(sel.OutOfProfile, name)
		}
	}

	for _, t := range catalogue {
		if !opts.Profile.Includes(t.MinProfile()) {
			continue
		}
		if len(opts.Only) > 0 && !slices.Contains(opts.Only, t.Name()) {
			continue
		}
		if slices.Contains(opts.Skip, t.Name()) {
			continue
		}
		sel.Tasks = append(sel.Tasks, t)
	}
	return sel
}
