package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
	"github.com/dmitrijs2005/estatekeeper/internal/client/services"
	"github.com/dmitrijs2005/estatekeeper/internal/client/validation"
	"github.com/dmitrijs2005/estatekeeper/internal/common"
)

// Mine lists the listings owned by the current user.
func (a *App) Mine(ctx context.Context) error {
	userID := a.session.UserID(ctx)
	if userID == "" {
		fmt.Fprintln(a.out, "Could not determine your user id; try signing in again.")
		return nil
	}

	items, err := a.properties.ListByUser(ctx, userID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load your listings:", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Your listings: %d\n", len(items))
	for _, p := range items {
		a.printListing(p)
	}
	return nil
}

// Add interactively collects a new listing and creates it. The draft is
// validated locally before the backend call; on success the cached feed is
// refreshed so the new listing shows up everywhere.
func (a *App) Add(ctx context.Context) error {
	var d models.Draft
	var err error

	if d.Title, err = getSimpleText(a.reader, "Title", os.Stdout); err != nil {
		return err
	}
	if d.Location, err = getSimpleText(a.reader, "Location", os.Stdout); err != nil {
		return err
	}

	typeLine, err := getSimpleText(a.reader, "Property type (apartment, house, villa, land)", os.Stdout)
	if err != nil {
		return err
	}
	t, ok := models.ParsePropertyType(typeLine)
	if !ok {
		fmt.Fprintln(a.out, "Unknown property type:", typeLine)
		return nil
	}
	d.PropertyType = t

	priceLine, err := getSimpleText(a.reader, "Price", os.Stdout)
	if err != nil {
		return err
	}
	if d.Price, err = ParsePrice(priceLine); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}

	areaLine, err := getSimpleText(a.reader, "Area in m2 (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	if areaLine != "" {
		if d.Area, err = strconv.ParseFloat(areaLine, 64); err != nil {
			fmt.Fprintln(a.out, "Invalid area:", areaLine)
			return nil
		}
	}

	if d.Bedrooms, err = a.promptCount("Bedrooms (empty to skip)"); err != nil {
		return err
	}
	if d.Bathrooms, err = a.promptCount("Bathrooms (empty to skip)"); err != nil {
		return err
	}

	if d.Description, err = getSimpleText(a.reader, "Description (empty to skip)", os.Stdout); err != nil {
		return err
	}

	imagesLine, err := getSimpleText(a.reader, "Image URLs, comma separated (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	for _, u := range strings.Split(imagesLine, ",") {
		if u = strings.TrimSpace(u); u != "" {
			d.Images = append(d.Images, u)
		}
	}

	if err := validation.CheckDraft(d); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	created, err := a.properties.Create(ctx, d)
	if err != nil {
		fmt.Fprintln(a.out, "Could not create listing:", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Created listing", created.ID)

	_ = a.listings.Refresh(ctx)
	return nil
}

// Edit loads a listing, prompts for new values (empty keeps the current
// one), and sends a partial update.
func (a *App) Edit(ctx context.Context, id string) error {
	if id == "" {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return nil
	}

	current, err := a.properties.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintln(a.out, "Listing not found:", id)
			return nil
		}
		fmt.Fprintln(a.out, "Could not load listing:", err.Error())
		return err
	}

	var patch models.Patch

	titleLine, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", current.Title), os.Stdout)
	if err != nil {
		return err
	}
	if titleLine != "" {
		patch.Title = &titleLine
	}

	locLine, err := getSimpleText(a.reader, fmt.Sprintf("Location [%s]", current.Location), os.Stdout)
	if err != nil {
		return err
	}
	if locLine != "" {
		patch.Location = &locLine
	}

	priceLine, err := getSimpleText(a.reader, fmt.Sprintf("Price [%s]", FormatPrice(current.Price)), os.Stdout)
	if err != nil {
		return err
	}
	if priceLine != "" {
		v, err := ParsePrice(priceLine)
		if err != nil {
			fmt.Fprintln(a.out, err.Error())
			return nil
		}
		patch.Price = &v
	}

	statusLine, err := getSimpleText(a.reader, fmt.Sprintf("Status [%s] (available, sold, rented)", current.Status), os.Stdout)
	if err != nil {
		return err
	}
	if statusLine != "" {
		s := models.Status(statusLine)
		if !s.Valid() {
			fmt.Fprintln(a.out, "Unknown status:", statusLine)
			return nil
		}
		patch.Status = &s
	}

	descLine, err := getSimpleText(a.reader, "Description (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	if descLine != "" {
		patch.Description = &descLine
	}

	updated, err := a.properties.Update(ctx, id, patch)
	if err != nil {
		fmt.Fprintln(a.out, "Could not update listing:", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Updated listing", updated.ID)

	_ = a.listings.Refresh(ctx)
	return nil
}

// Delete removes a listing after an explicit confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	if id == "" {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return nil
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete listing %s? (y/N)", id), os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Canceled.")
		return nil
	}

	if _, err := a.properties.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintln(a.out, "Listing not found:", id)
			return nil
		}
		fmt.Fprintln(a.out, "Could not delete listing:", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Deleted listing", id)

	_ = a.listings.Refresh(ctx)
	return nil
}

// Profile shows the current profile; "profile edit" prompts for a new name
// and phone (empty keeps the current value) and updates it.
func (a *App) Profile(ctx context.Context, arg string) error {
	u := a.session.User()

	if arg != "edit" {
		if u == nil {
			fmt.Fprintln(a.out, "No profile cached; sign in again or use 'profile edit' to set one.")
			return nil
		}
		fmt.Fprintf(a.out, "%s\n  email: %s\n  phone: %s\n", u.Name, u.Email, u.Phone)
		return nil
	}

	var patch services.UserPatch

	nameLine, err := getSimpleText(a.reader, "Name (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	if nameLine != "" {
		patch.Name = &nameLine
	}

	phoneLine, err := getSimpleText(a.reader, "Phone (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	if phoneLine != "" {
		if !validation.IsValidPhone(phoneLine) {
			fmt.Fprintln(a.out, "Phone must be 10-11 digits.")
			return nil
		}
		patch.Phone = &phoneLine
	}

	if patch.Name == nil && patch.Phone == nil {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	if err := a.session.UpdateUser(ctx, patch); err != nil {
		fmt.Fprintln(a.out, "Could not update profile:", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

func (a *App) promptCount(prompt string) (int, error) {
	line, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	if line == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(line)
	if err != nil || v < 0 {
		fmt.Fprintln(a.out, "Invalid number:", line)
		return 0, nil
	}
	return v, nil
}
