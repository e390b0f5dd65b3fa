// Package models defines the client-side record types and normalizes the
// backend's wire formats into one canonical shape. The API historically
// served two field-naming schemes for listings (name/address vs
// title/location, _id vs id, a bare imageUrl vs an images array); all of
// that is folded here so nothing above the service boundary ever sees it.
package models

import (
	"encoding/json"
	"time"
)

// PropertyType is the listing category.
type PropertyType string

const (
	TypeApartment PropertyType = "apartment"
	TypeHouse     PropertyType = "house"
	TypeVilla     PropertyType = "villa"
	TypeLand      PropertyType = "land"
)

// PropertyTypes lists every valid category, in display order.
var PropertyTypes = []PropertyType{TypeApartment, TypeHouse, TypeVilla, TypeLand}

// Valid reports whether t is one of the known categories.
func (t PropertyType) Valid() bool {
	switch t {
	case TypeApartment, TypeHouse, TypeVilla, TypeLand:
		return true
	}
	return false
}

// ParsePropertyType converts user input into a PropertyType.
// The empty string and unknown values return ok=false.
func ParsePropertyType(s string) (PropertyType, bool) {
	t := PropertyType(s)
	return t, t.Valid()
}

// Status is the listing availability state.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusRented    Status = "rented"
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusRented:
		return true
	}
	return false
}

// Owner identifies the user a listing belongs to. The backend embeds it
// either as a populated object or as a bare user-id string.
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UnmarshalJSON accepts both a populated owner object and a bare id string.
func (o *Owner) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		o.ID = id
		return nil
	}

	var w struct {
		ID       string `json:"id"`
		LegacyID string `json:"_id"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	o.ID = w.ID
	if o.ID == "" {
		o.ID = w.LegacyID
	}
	o.Name = w.Name
	o.Phone = w.Phone
	return nil
}

// Property is the canonical listing record. Price is in VND (smallest
// currency unit, no decimals); Area is in square meters.
type Property struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Price        int64        `json:"price"`
	Location     string       `json:"location"`
	PropertyType PropertyType `json:"propertyType"`
	Area         float64      `json:"area"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	Images       []string     `json:"images,omitempty"`
	Status       Status       `json:"status"`
	Owner        Owner        `json:"owner"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// propertyWire mirrors everything the backend may send, both naming schemes
// at once.
type propertyWire struct {
	ID           string       `json:"id"`
	LegacyID     string       `json:"_id"`
	Title        string       `json:"title"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        int64        `json:"price"`
	Location     string       `json:"location"`
	Address      string       `json:"address"`
	PropertyType PropertyType `json:"propertyType"`
	Area         float64      `json:"area"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	Images       []string     `json:"images"`
	ImageURL     string       `json:"imageUrl"`
	Status       Status       `json:"status"`
	Owner        *Owner       `json:"owner"`
	UserID       *Owner       `json:"userId"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// UnmarshalJSON decodes either wire scheme into the canonical record.
// When a record carries both schemes, the canonical (title/location/id)
// fields win.
func (p *Property) UnmarshalJSON(data []byte) error {
	var w propertyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	p.ID = firstNonEmpty(w.ID, w.LegacyID)
	p.Title = firstNonEmpty(w.Title, w.Name)
	p.Location = firstNonEmpty(w.Location, w.Address)
	p.Description = w.Description
	p.Price = w.Price
	p.PropertyType = w.PropertyType
	p.Area = w.Area
	p.Bedrooms = w.Bedrooms
	p.Bathrooms = w.Bathrooms
	p.Status = w.Status
	p.CreatedAt = w.CreatedAt
	p.UpdatedAt = w.UpdatedAt

	p.Images = w.Images
	if len(p.Images) == 0 && w.ImageURL != "" {
		p.Images = []string{w.ImageURL}
	}

	switch {
	case w.Owner != nil:
		p.Owner = *w.Owner
	case w.UserID != nil:
		p.Owner = *w.UserID
	default:
		p.Owner = Owner{}
	}

	return nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// Draft holds the caller-supplied fields for creating a listing. Ownership
// and timestamps are assigned server-side.
type Draft struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Price        int64        `json:"price"`
	Location     string       `json:"location"`
	PropertyType PropertyType `json:"propertyType"`
	Area         float64      `json:"area"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	Images       []string     `json:"images,omitempty"`
	Status       Status       `json:"status,omitempty"`
}

// Patch holds a partial update; nil fields are left untouched server-side.
type Patch struct {
	Title        *string       `json:"title,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Price        *int64        `json:"price,omitempty"`
	Location     *string       `json:"location,omitempty"`
	PropertyType *PropertyType `json:"propertyType,omitempty"`
	Area         *float64      `json:"area,omitempty"`
	Bedrooms     *int          `json:"bedrooms,omitempty"`
	Bathrooms    *int          `json:"bathrooms,omitempty"`
	Images       []string      `json:"images,omitempty"`
	Status       *Status       `json:"status,omitempty"`
}
