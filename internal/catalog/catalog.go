package catalog

import (
	"sort"

	"github.com/abrezinsky/inkstats/internal/models"
)

// Catalog indexes the weapon table and the reskin equivalence classes
// built from it. It is immutable after New and safe for concurrent use.
type Catalog struct {
	weapons   map[int]models.Weapon
	canonical map[int]int   // weapon id -> canonical id
	members   map[int][]int // canonical id -> all member ids, sorted
}

// New builds a Catalog from the full weapon table. A weapon whose
// ReskinOf is set belongs to the equivalence class of that canonical
// weapon; every other weapon is the canonical of its own class.
func New(weapons []models.Weapon) *Catalog {
	c := &Catalog{
		weapons:   make(map[int]models.Weapon, len(weapons)),
		canonical: make(map[int]int, len(weapons)),
		members:   make(map[int][]int),
	}
	for _, w := range weapons {
		c.weapons[w.ID] = w
		canon := w.ID
		if w.ReskinOf != nil {
			canon = *w.ReskinOf
		}
		c.canonical[w.ID] = canon
		c.members[canon] = append(c.members[canon], w.ID)
	}
	for canon, ids := range c.members {
		sort.Ints(ids)
		c.members[canon] = ids
	}
	return c
}

// Weapon returns the weapon row for id
func (c *Catalog) Weapon(id int) (models.Weapon, bool) {
	w, ok := c.weapons[id]
	return w, ok
}

// Weapons returns all weapon rows ordered by id.
func (c *Catalog) Weapons() []models.Weapon {
	out := make([]models.Weapon, 0, len(c.weapons))
	for _, w := range c.weapons {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CanonicalOf maps a weapon id to the canonical id of its equivalence
// class. Unknown ids map to themselves.
func (c *Catalog) CanonicalOf(id int) int {
	if canon, ok := c.canonical[id]; ok {
		return canon
	}
	return id
}

// MembersOf returns every weapon id in the equivalence class of id,
// canonical included, sorted ascending. Unknown ids get a singleton
// class.
func (c *Catalog) MembersOf(id int) []int {
	canon := c.CanonicalOf(id)
	if ids, ok := c.members[canon]; ok {
		out := make([]int, len(ids))
		copy(out, ids)
		return out
	}
	return []int{id}
}

// Expand widens a set of weapon ids to the union of their equivalence
// classes, deduplicated and sorted ascending.
func (c *Catalog) Expand(ids []int) []int {
	seen := make(map[int]struct{})
	for _, id := range ids {
		for _, m := range c.MembersOf(id) {
			seen[m] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// CanonicalizeSet maps each id to its canonical, deduplicates and
// sorts. Two weapon sets are equivalent iff their canonicalized forms
// are equal.
func (c *Catalog) CanonicalizeSet(ids []int) []int {
	seen := make(map[int]struct{})
	for _, id := range ids {
		seen[c.CanonicalOf(id)] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// CanonicalWeaponIDs returns every canonical weapon id, sorted
func (c *Catalog) CanonicalWeaponIDs() []int {
	out := make([]int, 0, len(c.members))
	for canon := range c.members {
		out = append(out, canon)
	}
	sort.Ints(out)
	return out
}

// Classify projects a weapon id onto a dimension: the canonical weapon
// id (reskins folded), the main display reference, or the weapon's
// sub/special id. Returns false for weapons not in the catalog on
// dimensions that need the weapon row.
func (c *Catalog) Classify(weaponID int, dim models.Dimension) (int, bool) {
	if dim == models.DimensionWeapon {
		return c.CanonicalOf(weaponID), true
	}
	w, ok := c.weapons[weaponID]
	if !ok {
		return 0, false
	}
	switch dim {
	case models.DimensionMain:
		return w.MainReference, true
	case models.DimensionSub:
		return w.SubWeaponID, true
	case models.DimensionSpecial:
		return w.SpecialID, true
	default:
		return 0, false
	}
}

// Universe returns every possible value of a dimension, sorted. For
// popularity and trend tallies the universe fixes which buckets exist
// even when a value never occurs in the data.
func (c *Catalog) Universe(dim models.Dimension) []int {
	switch dim {
	case models.DimensionWeapon:
		return c.CanonicalWeaponIDs()
	case models.DimensionMain:
		seen := make(map[int]struct{}, len(c.weapons))
		for _, w := range c.weapons {
			seen[w.MainReference] = struct{}{}
		}
		out := make([]int, 0, len(seen))
		for id := range seen {
			out = append(out, id)
		}
		sort.Ints(out)
		return out
	case models.DimensionSub:
		out := make([]int, 0, len(SubWeapons))
		for _, r := range SubWeapons {
			out = append(out, r.ID)
		}
		sort.Ints(out)
		return out
	case models.DimensionSpecial:
		out := make([]int, 0, len(SpecialWeapons))
		for _, r := range SpecialWeapons {
			out = append(out, r.ID)
		}
		sort.Ints(out)
		return out
	}
	return nil
}
