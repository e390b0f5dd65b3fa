package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
)

func price(n int64) *int64 { return &n }

var base = []models.Property{
	{ID: "a", Title: "Riverside Apartment", Location: "District 2", PropertyType: models.TypeApartment, Price: 2_500_000_000},
	{ID: "b", Title: "Garden House", Location: "District 7", PropertyType: models.TypeHouse, Price: 9_000_000_000},
	{ID: "c", Title: "Beach Villa", Location: "Vung Tau", PropertyType: models.TypeVilla, Price: 30_000_000_000},
	{ID: "d", Title: "Corner Land Plot", Location: "Thu Duc", PropertyType: models.TypeLand, Price: 800_000_000},
	{ID: "e", Title: "City Apartment", Location: "District 1", PropertyType: models.TypeApartment, Price: 4_000_000_000},
}

func ids(list []models.Property) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestApply_Identity(t *testing.T) {
	got := Apply(base, QuickAll, Options{})
	require.Equal(t, ids(base), ids(got))

	// the result is a copy, not the base slice itself
	got[0].ID = "mutated"
	require.Equal(t, "a", base[0].ID)
}

func TestApply_QuickFilter_OrderPreservingSubsequence(t *testing.T) {
	got := Apply(base, QuickOf(models.TypeApartment), Options{})
	require.Equal(t, []string{"a", "e"}, ids(got))
	for _, p := range got {
		require.Equal(t, models.TypeApartment, p.PropertyType)
	}
}

func TestApply_AdvancedTypeSet(t *testing.T) {
	got := Apply(base, QuickAll, Options{Types: []models.PropertyType{models.TypeHouse, models.TypeLand}})
	require.Equal(t, []string{"b", "d"}, ids(got))
}

func TestApply_QuickAndAdvancedDisagree_EmptyResult(t *testing.T) {
	// both constraints are ANDed; disagreement empties the view by design
	got := Apply(base, QuickOf(models.TypeVilla), Options{Types: []models.PropertyType{models.TypeApartment}})
	require.Empty(t, got)
}

func TestApply_PriceBounds(t *testing.T) {
	got := Apply(base, QuickAll, Options{MinPrice: price(2_000_000_000), MaxPrice: price(10_000_000_000)})
	require.Equal(t, []string{"a", "b", "e"}, ids(got))

	// bounds are inclusive
	got = Apply(base, QuickAll, Options{MinPrice: price(800_000_000), MaxPrice: price(800_000_000)})
	require.Equal(t, []string{"d"}, ids(got))
}

func TestApply_InvertedBounds_EmptyNoSwap(t *testing.T) {
	got := Apply(base, QuickAll, Options{MinPrice: price(10_000_000_000), MaxPrice: price(1_000_000_000)})
	require.Empty(t, got)
}

func TestApply_ClearRestoresFullBase(t *testing.T) {
	// run an aggressive combination first, then clear
	_ = Apply(base, QuickOf(models.TypeVilla), Options{MinPrice: price(50_000_000_000)})

	got := Apply(base, QuickAll, Options{})
	require.Equal(t, ids(base), ids(got))
}

func TestApply_RecomputesFromChangedBase(t *testing.T) {
	quick := QuickOf(models.TypeApartment)
	require.Equal(t, []string{"a", "e"}, ids(Apply(base, quick, Options{})))

	// a deleted record disappears from the filtered view on recompute
	smaller := append([]models.Property{}, base[1:]...)
	require.Equal(t, []string{"e"}, ids(Apply(smaller, quick, Options{})))
}

func TestPriceRange_Bounds(t *testing.T) {
	tests := []struct {
		tag      PriceRange
		min, max *int64
	}{
		{PriceAll, nil, nil},
		{PriceUnder1, price(0), price(1_000_000_000)},
		{Price1To5, price(1_000_000_000), price(5_000_000_000)},
		{Price5To10, price(5_000_000_000), price(10_000_000_000)},
		{Price10To50, price(10_000_000_000), price(50_000_000_000)},
		{PriceOver50, price(50_000_000_000), nil},
	}

	for _, tc := range tests {
		min, max := tc.tag.Bounds()
		if tc.min == nil {
			require.Nil(t, min, tc.tag)
		} else {
			require.Equal(t, *tc.min, *min, tc.tag)
		}
		if tc.max == nil {
			require.Nil(t, max, tc.tag)
		} else {
			require.Equal(t, *tc.max, *max, tc.tag)
		}
	}
}

func TestOptions_WithPriceRange(t *testing.T) {
	o := Options{Types: []models.PropertyType{models.TypeVilla}}.WithPriceRange(PriceOver50)
	require.Equal(t, PriceOver50, o.PriceRange)
	require.Equal(t, int64(50_000_000_000), *o.MinPrice)
	require.Nil(t, o.MaxPrice)

	got := Apply(base, QuickAll, o)
	require.Empty(t, got) // villa "c" is 30 billion, below the preset floor
}

func TestOptions_Empty(t *testing.T) {
	require.True(t, Options{}.Empty())
	require.True(t, Options{PriceRange: PriceAll}.Empty())
	require.False(t, Options{MinPrice: price(1)}.Empty())
	require.False(t, Options{Types: []models.PropertyType{models.TypeLand}}.Empty())
}

func TestSearch_CaseInsensitiveTitleAndLocation(t *testing.T) {
	require.Equal(t, []string{"a", "e"}, ids(Search(base, "APARTMENT", QuickAll)))
	require.Equal(t, []string{"d"}, ids(Search(base, "thu duc", QuickAll)))
}

func TestSearch_AndedWithCategory(t *testing.T) {
	require.Equal(t, []string{"a"}, ids(Search(base, "district", QuickOf(models.TypeApartment))))
}

func TestSearch_BlankQueryIsIdentity(t *testing.T) {
	require.Equal(t, ids(base), ids(Search(base, "   ", QuickAll)))
}
