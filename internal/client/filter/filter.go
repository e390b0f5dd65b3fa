// Package filter derives the displayed subset of a property collection
// from the filter inputs. One predicate pipeline serves the quick category
// chips, the advanced filter modal, and the explore-screen text search, so
// the three controls can never drift apart in semantics.
//
// Every function here is pure and order-preserving, and always starts from
// the unfiltered base collection — results are never patched incrementally,
// so a refresh or delete in the base can never leave ghosts in the view.
package filter

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
)

// Quick is the single-select category chip: a property type or "all".
type Quick string

// QuickAll disables the quick filter.
const QuickAll Quick = "all"

// QuickOf wraps a property type into a quick-filter value.
func QuickOf(t models.PropertyType) Quick {
	return Quick(t)
}

// PriceRange is a preset tag from the advanced filter modal.
type PriceRange string

const (
	PriceAll     PriceRange = "all"
	PriceUnder1  PriceRange = "under1"
	Price1To5    PriceRange = "1to5"
	Price5To10   PriceRange = "5to10"
	Price10To50  PriceRange = "10to50"
	PriceOver50  PriceRange = "over50"
)

const billion int64 = 1_000_000_000

// Bounds returns the VND price bounds of the preset; nil means unbounded
// on that side.
func (r PriceRange) Bounds() (min, max *int64) {
	bound := func(n int64) *int64 { return &n }
	switch r {
	case PriceUnder1:
		return bound(0), bound(1 * billion)
	case Price1To5:
		return bound(1 * billion), bound(5 * billion)
	case Price5To10:
		return bound(5 * billion), bound(10 * billion)
	case Price10To50:
		return bound(10 * billion), bound(50 * billion)
	case PriceOver50:
		return bound(50 * billion), nil
	default:
		return nil, nil
	}
}

// Options is the advanced filter state. An empty Types slice means no
// category constraint; nil price bounds mean unbounded.
type Options struct {
	Types    []models.PropertyType
	MinPrice *int64
	MaxPrice *int64

	// PriceRange only records which preset the bounds came from, for
	// re-rendering the modal; Apply never reads it.
	PriceRange PriceRange
}

// WithPriceRange returns a copy of o with the preset's bounds installed.
func (o Options) WithPriceRange(r PriceRange) Options {
	o.PriceRange = r
	o.MinPrice, o.MaxPrice = r.Bounds()
	return o
}

// Empty reports whether o constrains nothing.
func (o Options) Empty() bool {
	return len(o.Types) == 0 && o.MinPrice == nil && o.MaxPrice == nil
}

type predicate func(models.Property) bool

// Apply runs the full pipeline over base: quick category, advanced
// category set, min price, max price, ANDed in that order. The two
// category constraints may disagree and yield an empty result; that is the
// defined behavior, not something to reconcile here.
//
// The surviving records keep their relative order from base; base itself
// is never mutated.
func Apply(base []models.Property, quick Quick, opts Options) []models.Property {
	var preds []predicate

	if quick != QuickAll && quick != "" {
		want := models.PropertyType(quick)
		preds = append(preds, func(p models.Property) bool { return p.PropertyType == want })
	}

	if len(opts.Types) > 0 {
		allowed := make(map[models.PropertyType]struct{}, len(opts.Types))
		for _, t := range opts.Types {
			allowed[t] = struct{}{}
		}
		preds = append(preds, func(p models.Property) bool {
			_, ok := allowed[p.PropertyType]
			return ok
		})
	}

	if opts.MinPrice != nil {
		min := *opts.MinPrice
		preds = append(preds, func(p models.Property) bool { return p.Price >= min })
	}
	if opts.MaxPrice != nil {
		max := *opts.MaxPrice
		preds = append(preds, func(p models.Property) bool { return p.Price <= max })
	}

	return keep(base, preds)
}

// Search is the explore-screen variant: a case-insensitive substring match
// against title and location, ANDed with a quick category filter. A blank
// query constrains nothing.
func Search(base []models.Property, queryText string, quick Quick) []models.Property {
	var preds []predicate

	if q := strings.ToLower(strings.TrimSpace(queryText)); q != "" {
		preds = append(preds, func(p models.Property) bool {
			return strings.Contains(strings.ToLower(p.Title), q) ||
				strings.Contains(strings.ToLower(p.Location), q)
		})
	}

	if quick != QuickAll && quick != "" {
		want := models.PropertyType(quick)
		preds = append(preds, func(p models.Property) bool { return p.PropertyType == want })
	}

	return keep(base, preds)
}

func keep(base []models.Property, preds []predicate) []models.Property {
	if len(preds) == 0 {
		return slices.Clone(base)
	}

	out := make([]models.Property, 0, len(base))
next:
	for _, p := range base {
		for _, pred := range preds {
			if !pred(p) {
				continue next
			}
		}
		out = append(out, p)
	}
	return out
}
