package citation

import (
	"sort"
	"strings"

	"github.com/jajnabi/folio/internal/reference"
)

// Index maps citation keys to publications. It is built once after loading
// and never mutated.
//
// Two publications by the same first author in the same year share a key;
// the first one in input order wins. Collisions reports such keys.
type Index struct {
	byKey map[Key]reference.Publication
	dupes map[Key]int
	pubs  []reference.Publication
}

// BuildIndex indexes a publication collection.
func BuildIndex(pubs []reference.Publication) *Index {
	ix := &Index{
		byKey: make(map[Key]reference.Publication, len(pubs)),
		dupes: make(map[Key]int),
		pubs:  pubs,
	}
	for _, p := range pubs {
		k := KeyFor(p)
		if _, exists := ix.byKey[k]; exists {
			ix.dupes[k]++
			continue
		}
		ix.byKey[k] = p
	}
	return ix
}

// Resolve looks up a raw key case-insensitively. A missing key is reported
// through ok, never as an error.
func (ix *Index) Resolve(raw string) (reference.Publication, bool) {
	if ix == nil {
		return reference.Publication{}, false
	}
	p, ok := ix.byKey[NormalizeKey(raw)]
	return p, ok
}

// ResolveAuthorYear finds a publication from a prose citation such as
// "(Ajnabi et al., 2023)". The derived key is tried first; failing that, the
// first publication of that year whose first author token ends with the
// last word of name matches, so "Ajnabi" also finds "J. Ajnabi, K. Lee".
func (ix *Index) ResolveAuthorYear(name string, year int) (reference.Publication, bool) {
	if ix == nil {
		return reference.Publication{}, false
	}
	if p, ok := ix.byKey[makeKey(name, year)]; ok {
		return p, true
	}

	words := strings.Fields(name)
	if len(words) == 0 {
		return reference.Publication{}, false
	}
	want := normalizeName(words[len(words)-1])
	for _, p := range ix.pubs {
		if int(p.Year) != year {
			continue
		}
		fields := strings.Fields(reference.FirstAuthorToken(p.Authors))
		if len(fields) == 0 {
			continue
		}
		if normalizeName(fields[len(fields)-1]) == want {
			return p, true
		}
	}
	return reference.Publication{}, false
}

// ResolveMarker resolves a scanned marker by key or by author and year.
func (ix *Index) ResolveMarker(m Marker) (reference.Publication, bool) {
	if m.Keyed() {
		return ix.Resolve(m.Key)
	}
	return ix.ResolveAuthorYear(m.Name, m.Year)
}

// Len returns the number of distinct keys.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.byKey)
}

// Keys returns every indexed key in sorted order.
func (ix *Index) Keys() []Key {
	if ix == nil {
		return nil
	}
	keys := make([]Key, 0, len(ix.byKey))
	for k := range ix.byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Collisions returns keys shared by more than one publication, sorted, with
// the number of publications that were shadowed by the first match.
func (ix *Index) Collisions() []Collision {
	if ix == nil || len(ix.dupes) == 0 {
		return nil
	}
	out := make([]Collision, 0, len(ix.dupes))
	for k, n := range ix.dupes {
		out = append(out, Collision{Key: k, Shadowed: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Collision describes a key that more than one publication derives.
type Collision struct {
	Key      Key `json:"key"`
	Shadowed int `json:"shadowed"`
}
