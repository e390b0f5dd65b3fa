package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
	"github.com/dmitrijs2005/estatekeeper/internal/common"
)

// fakeBackend is an in-memory listing backend with the observed REST
// surface, including the legacy field naming on some records.
func fakeBackend(t *testing.T) (*mux.Router, map[string]string) {
	t.Helper()

	listings := map[string]string{
		"p1": `{"id":"p1","title":"Apartment","location":"D2","price":100,"propertyType":"apartment","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}`,
		"p2": `{"_id":"p2","name":"House","address":"D7","price":200,"propertyType":"house","createdAt":"2024-01-02T00:00:00Z","updatedAt":"2024-01-02T00:00:00Z"}`,
	}

	r := mux.NewRouter()
	r.HandleFunc("/properties", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[` + listings["p1"] + `,` + listings["p2"] + `]`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/properties/user/{userId}", func(w http.ResponseWriter, req *http.Request) {
		if mux.Vars(req)["userId"] == "u1" {
			w.Write([]byte(`[` + listings["p1"] + `]`))
			return
		}
		w.Write([]byte(`[]`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/properties/{id}", func(w http.ResponseWriter, req *http.Request) {
		body, ok := listings[mux.Vars(req)["id"]]
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}).Methods(http.MethodGet)

	return r, listings
}

func TestPropertyService_List_NormalizesBothSchemes(t *testing.T) {
	r, _ := fakeBackend(t)
	svc := NewPropertyService(newGateway(t, r), testLogger())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	// order preserved, both schemes canonical after decoding
	require.Equal(t, "p1", list[0].ID)
	require.Equal(t, "Apartment", list[0].Title)
	require.Equal(t, "p2", list[1].ID)
	require.Equal(t, "House", list[1].Title)
	require.Equal(t, "D7", list[1].Location)
}

func TestPropertyService_List_BareObjectBecomesSingletonSlice(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/properties", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"id":"only","title":"Single","price":1}`))
	}).Methods(http.MethodGet)

	svc := NewPropertyService(newGateway(t, r), testLogger())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "only", list[0].ID)
}

func TestPropertyService_Get_NotFound(t *testing.T) {
	r, _ := fakeBackend(t)
	svc := NewPropertyService(newGateway(t, r), testLogger())

	_, err := svc.Get(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPropertyService_ListByUser(t *testing.T) {
	r, _ := fakeBackend(t)
	svc := NewPropertyService(newGateway(t, r), testLogger())

	mine, err := svc.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "p1", mine[0].ID)

	none, err := svc.ListByUser(context.Background(), "u9")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestPropertyService_CreateUpdateDelete(t *testing.T) {
	r := mux.NewRouter()

	r.HandleFunc("/properties", func(w http.ResponseWriter, req *http.Request) {
		var draft models.Draft
		require.NoError(t, json.NewDecoder(req.Body).Decode(&draft))
		require.Equal(t, "New villa", draft.Title)

		w.Write([]byte(`{"id":"p9","title":"New villa","propertyType":"villa","price":500}`))
	}).Methods(http.MethodPost)

	r.HandleFunc("/properties/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := mux.Vars(req)["id"]
		switch req.Method {
		case http.MethodPut:
			var patch map[string]any
			require.NoError(t, json.NewDecoder(req.Body).Decode(&patch))
			require.Equal(t, float64(600), patch["price"])
			require.NotContains(t, patch, "title")
			w.Write([]byte(`{"id":"` + id + `","title":"New villa","propertyType":"villa","price":600}`))
		case http.MethodDelete:
			w.Write([]byte(`{"id":"` + id + `","title":"New villa","status":"sold"}`))
		}
	}).Methods(http.MethodPut, http.MethodDelete)

	svc := NewPropertyService(newGateway(t, r), testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Draft{Title: "New villa", PropertyType: models.TypeVilla, Price: 500})
	require.NoError(t, err)
	require.Equal(t, "p9", created.ID)

	price := int64(600)
	updated, err := svc.Update(ctx, "p9", models.Patch{Price: &price})
	require.NoError(t, err)
	require.Equal(t, int64(600), updated.Price)

	deleted, err := svc.Delete(ctx, "p9")
	require.NoError(t, err)
	require.Equal(t, "p9", deleted.ID)
}
