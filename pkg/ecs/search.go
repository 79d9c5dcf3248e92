package ecs

import (
	"github.com/kelindar/bitmap"
	"github.com/rotisserie/eris"
)

// SearchMatch is the type of match to use for a search.
type SearchMatch string

const (
	// MatchExact matches entities that have exactly the specified components.
	MatchExact SearchMatch = "exact"
	// MatchContains matches entities that have the specified components and possibly others.
	MatchContains SearchMatch = "contains"
)

// SearchParam selects entities by their component set.
type SearchParam struct {
	Find     []string    // Components the entities must have
	Match    SearchMatch // How Find is matched against an entity's components
	Disallow []string    // Entities with any of these components are skipped
}

func (s *SearchParam) validate() error {
	if len(s.Find) == 0 {
		return eris.New("component list cannot be empty")
	}
	if s.Match != MatchExact && s.Match != MatchContains {
		return eris.Errorf("invalid `match` value: must be either '%s' or '%s'", MatchExact, MatchContains)
	}
	return nil
}

// Search returns the IDs of the entities matching the parameters, grouped by archetype in
// archetype creation order and then by row.
func Search(w *World, params SearchParam) ([]EntityID, error) {
	if err := params.validate(); err != nil {
		return nil, eris.Wrap(err, "invalid search params")
	}

	find, err := w.components.toBitmap(params.Find)
	if err != nil {
		return nil, eris.Wrap(err, "failed to resolve search components")
	}
	disallow, err := w.components.toBitmap(params.Disallow)
	if err != nil {
		return nil, eris.Wrap(err, "failed to resolve disallowed components")
	}

	results := make([]EntityID, 0)
	for _, arch := range w.matchArchetypes(find, params.Match, disallow) {
		results = append(results, arch.entities...)
	}
	return results, nil
}

func (w *World) matchArchetypes(find bitmap.Bitmap, match SearchMatch, disallow bitmap.Bitmap) []*archetype {
	var archs []*archetype
	for _, arch := range w.archetypes {
		switch match {
		case MatchExact:
			if !arch.exact(find) {
				continue
			}
		case MatchContains:
			if !arch.contains(find) {
				continue
			}
		}
		if disallow.Count() > 0 && arch.intersects(disallow) {
			continue
		}
		archs = append(archs, arch)
	}
	return archs
}
