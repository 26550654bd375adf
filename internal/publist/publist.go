// Package publist derives the filtered, sorted publication view and owns the
// filter and sort state that drives it.
package publist

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jajnabi/folio/internal/reference"
)

// FilterType selects which publications are shown.
type FilterType string

const (
	All      FilterType = "all"
	Peer     FilterType = FilterType(reference.Peer)
	Preprint FilterType = FilterType(reference.Preprint)
)

// FilterTypes lists the filters in display order.
var FilterTypes = []FilterType{All, Peer, Preprint}

// Label returns the button caption for a filter.
func (f FilterType) Label() string {
	switch f {
	case Peer:
		return "Peer-reviewed"
	case Preprint:
		return "Preprints"
	default:
		return "All"
	}
}

// ErrUnknownFilter is returned for filter names outside FilterTypes.
var ErrUnknownFilter = errors.New("unknown publication filter")

// ParseFilterType validates a filter name.
func ParseFilterType(s string) (FilterType, error) {
	f := FilterType(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range FilterTypes {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be all, peer, or preprint", ErrUnknownFilter, s)
}

// SortOrder orders the view by year.
type SortOrder string

const (
	Desc SortOrder = "desc"
	Asc  SortOrder = "asc"
)

// ErrUnknownSort is returned for sort names other than desc and asc.
var ErrUnknownSort = errors.New("unknown sort order")

// ParseSortOrder validates a sort order name.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case Desc, Asc:
		return o, nil
	default:
		return "", fmt.Errorf("%w %q: must be desc or asc", ErrUnknownSort, s)
	}
}

// Toggle returns the opposite order.
func (o SortOrder) Toggle() SortOrder {
	if o == Desc {
		return Asc
	}
	return Desc
}

// Label returns the sort button caption.
func (o SortOrder) Label() string {
	if o == Asc {
		return "Oldest first"
	}
	return "Newest first"
}

// Matches reports whether a publication passes the filter.
func (f FilterType) Matches(p reference.Publication) bool {
	return f == All || FilterType(reference.Classify(p)) == f
}

// DeriveView filters pubs and orders them by year. Publications with equal
// years keep their input order. The input slice is not modified.
func DeriveView(pubs []reference.Publication, filter FilterType, order SortOrder) []reference.Publication {
	view := make([]reference.Publication, 0, len(pubs))
	for _, p := range pubs {
		if filter.Matches(p) {
			view = append(view, p)
		}
	}

	sort.SliceStable(view, func(i, j int) bool {
		if order == Asc {
			return view[i].Year < view[j].Year
		}
		return view[i].Year > view[j].Year
	})
	return view
}
