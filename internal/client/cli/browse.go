package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/estatekeeper/internal/client/filter"
	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
	"github.com/dmitrijs2005/estatekeeper/internal/common"
)

// ensureListings fetches the listing feed once; later commands reuse the
// cached base until an explicit refresh or a mutation.
func (a *App) ensureListings(ctx context.Context) error {
	if len(a.listings.All()) > 0 || a.listings.Err() != "" {
		return nil
	}
	return a.listings.Fetch(ctx)
}

// Home shows the featured section (ten newest listings) followed by the
// feed filtered by the quick category chip. An optional argument sets the
// chip: a property type or "all".
func (a *App) Home(ctx context.Context, quick string) error {
	if quick != "" {
		if quick == string(filter.QuickAll) {
			a.quick = filter.QuickAll
		} else if t, ok := models.ParsePropertyType(quick); ok {
			a.quick = filter.QuickOf(t)
		} else {
			fmt.Fprintln(a.out, "Unknown category:", quick, "(try: apartment, house, villa, land, all)")
			return nil
		}
	}

	if err := a.ensureListings(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not load listings:", err.Error(), "(try 'refresh')")
		return err
	}
	if msg := a.listings.Err(); msg != "" {
		fmt.Fprintln(a.out, "Last refresh failed:", msg, "(showing cached listings)")
	}

	featured := a.listings.Featured()
	if len(featured) > 0 {
		fmt.Fprintln(a.out, "Featured:")
		for _, p := range featured {
			a.printListing(p)
		}
	}

	items := filter.Apply(a.listings.All(), a.quick, filter.Options{})
	fmt.Fprintf(a.out, "Listings (%s): %d\n", a.quick, len(items))
	for _, p := range items {
		a.printListing(p)
	}
	return nil
}

// List shows the feed through both the quick chip and the advanced filter.
func (a *App) List(ctx context.Context) error {
	if err := a.ensureListings(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not load listings:", err.Error(), "(try 'refresh')")
		return err
	}

	items := filter.Apply(a.listings.All(), a.quick, a.advanced)
	fmt.Fprintf(a.out, "Listings: %d\n", len(items))
	for _, p := range items {
		a.printListing(p)
	}
	return nil
}

// Filter interactively sets the advanced filter: a set of property types
// and either a price preset or custom bounds. Empty answers keep the field
// unconstrained.
func (a *App) Filter(ctx context.Context) error {
	typesLine, err := getSimpleText(a.reader, "Property types, comma separated (apartment, house, villa, land; empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	var opts filter.Options
	for _, tok := range strings.Split(typesLine, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		t, ok := models.ParsePropertyType(tok)
		if !ok {
			fmt.Fprintln(a.out, "Unknown property type:", tok)
			return nil
		}
		opts.Types = append(opts.Types, t)
	}

	preset, err := getSimpleText(a.reader, "Price preset (all, under1, 1to5, 5to10, 10to50, over50) or 'custom'", os.Stdout)
	if err != nil {
		return err
	}
	switch preset {
	case "", string(filter.PriceAll):
		opts = opts.WithPriceRange(filter.PriceAll)
	case "custom":
		minLine, err := getSimpleText(a.reader, "Min price (empty for none)", os.Stdout)
		if err != nil {
			return err
		}
		maxLine, err := getSimpleText(a.reader, "Max price (empty for none)", os.Stdout)
		if err != nil {
			return err
		}
		if minLine != "" {
			v, err := ParsePrice(minLine)
			if err != nil {
				fmt.Fprintln(a.out, err.Error())
				return nil
			}
			opts.MinPrice = &v
		}
		if maxLine != "" {
			v, err := ParsePrice(maxLine)
			if err != nil {
				fmt.Fprintln(a.out, err.Error())
				return nil
			}
			opts.MaxPrice = &v
		}
	default:
		r := filter.PriceRange(preset)
		switch r {
		case filter.PriceUnder1, filter.Price1To5, filter.Price5To10, filter.Price10To50, filter.PriceOver50:
			opts = opts.WithPriceRange(r)
		default:
			fmt.Fprintln(a.out, "Unknown price preset:", preset)
			return nil
		}
	}

	a.advanced = opts
	return a.List(ctx)
}

// ClearFilters resets the quick chip and the advanced filter, restoring the
// unfiltered feed.
func (a *App) ClearFilters(ctx context.Context) error {
	a.quick = filter.QuickAll
	a.advanced = filter.Options{}
	fmt.Fprintln(a.out, "Filters cleared.")
	return a.List(ctx)
}

// Refresh re-fetches the feed from the backend. On failure the cached
// listings are kept and the error is surfaced.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.listings.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, "Refresh failed:", err.Error(), "(showing cached listings)")
		return err
	}
	fmt.Fprintf(a.out, "Fetched %d listings.\n", len(a.listings.All()))
	return nil
}

// Search runs a case-insensitive title/location substring search over the
// feed, still constrained by the quick chip.
func (a *App) Search(ctx context.Context, text string) error {
	if err := a.ensureListings(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not load listings:", err.Error(), "(try 'refresh')")
		return err
	}

	items := filter.Search(a.listings.All(), text, a.quick)
	fmt.Fprintf(a.out, "Matches for %q: %d\n", text, len(items))
	for _, p := range items {
		a.printListing(p)
	}
	return nil
}

// Show fetches and renders a single listing. A missing id is reported as
// "listing not found" rather than a generic error.
func (a *App) Show(ctx context.Context, id string) error {
	if id == "" {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return nil
	}

	p, err := a.properties.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintln(a.out, "Listing not found:", id)
			return nil
		}
		fmt.Fprintln(a.out, "Could not load listing:", err.Error())
		return err
	}

	a.printListingDetails(*p)
	return nil
}
