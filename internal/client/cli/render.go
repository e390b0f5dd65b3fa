package cli

import (
	"fmt"

	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
)

// printListing renders the one-line feed representation of a listing.
func (a *App) printListing(p models.Property) {
	fmt.Fprintf(a.out, "  %s  %-9s %-9s %12s  %s — %s\n",
		p.ID, p.PropertyType, p.Status, FormatPrice(p.Price), p.Title, p.Location)
}

// printListingDetails renders the full detail view of a listing.
func (a *App) printListingDetails(p models.Property) {
	fmt.Fprintf(a.out, "%s\n", p.Title)
	fmt.Fprintf(a.out, "  id:        %s\n", p.ID)
	fmt.Fprintf(a.out, "  type:      %s\n", p.PropertyType)
	fmt.Fprintf(a.out, "  status:    %s\n", p.Status)
	fmt.Fprintf(a.out, "  price:     %s\n", FormatPrice(p.Price))
	fmt.Fprintf(a.out, "  location:  %s\n", p.Location)
	if p.Area > 0 {
		fmt.Fprintf(a.out, "  area:      %.1f m2\n", p.Area)
	}
	if p.Bedrooms > 0 || p.Bathrooms > 0 {
		fmt.Fprintf(a.out, "  rooms:     %d bed / %d bath\n", p.Bedrooms, p.Bathrooms)
	}
	if p.Owner.ID != "" {
		fmt.Fprintf(a.out, "  owner:     %s\n", p.Owner.ID)
	}
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "  created:   %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	}
	for _, img := range p.Images {
		fmt.Fprintf(a.out, "  image:     %s\n", img)
	}
	if p.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", p.Description)
	}
}
