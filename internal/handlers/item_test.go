package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/Ninibaz/Ninibaz-REMWASTE-Assignment/internal/services"
	"github.com/Ninibaz/Ninibaz-REMWASTE-Assignment/internal/store"
	"github.com/Ninibaz/Ninibaz-REMWASTE-Assignment/types"
	"github.com/go-chi/chi/v5"
)

// fakeItemRepo is an in-memory services.ItemRepository with the same
// ownership semantics as the SQL store: a record owned by another user is
// reported as missing. Timestamps advance deterministically per insert.
type fakeItemRepo struct {
	items  map[int]types.Item
	nextID int
	now    time.Time
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		items:  make(map[int]types.Item),
		nextID: 1,
		now:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeItemRepo) tick() time.Time {
	r.now = r.now.Add(time.Second)
	return r.now
}

func (r *fakeItemRepo) ListByOwner(_ context.Context, ownerID int) ([]types.Item, error) {
	owned := make([]types.Item, 0)
	for _, item := range r.items {
		if item.UserID == ownerID {
			owned = append(owned, item)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID > owned[j].ID
	})
	return owned, nil
}

func (r *fakeItemRepo) GetByOwner(_ context.Context, ownerID, id int) (types.Item, error) {
	item, ok := r.items[id]
	if !ok || item.UserID != ownerID {
		return types.Item{}, store.ErrNotFound
	}
	return item, nil
}

func (r *fakeItemRepo) Create(_ context.Context, item types.Item) (types.Item, error) {
	item.ID = r.nextID
	r.nextID++
	now := r.tick()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeItemRepo) UpdateFields(_ context.Context, ownerID, id int, patch types.ItemPatch) (types.Item, error) {
	item, ok := r.items[id]
	if !ok || item.UserID != ownerID {
		return types.Item{}, store.ErrNotFound
	}
	if patch.Text != nil {
		item.Text = *patch.Text
	}
	if patch.Completed != nil {
		item.Completed = *patch.Completed
	}
	item.UpdatedAt = r.tick()
	r.items[id] = item
	return item, nil
}

func (r *fakeItemRepo) DeleteByOwner(_ context.Context, ownerID, id int) error {
	item, ok := r.items[id]
	if !ok || item.UserID != ownerID {
		return store.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func newItemRouter(repo *fakeItemRepo) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/items", func(r chi.Router) {
		ItemRouter(r, services.NewItemService(repo), RequireAuth(testSecret))
	})
	return router
}

func tokenFor(t *testing.T, userID int) string {
	t.Helper()
	token, err := issueToken(userID, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func createItem(t *testing.T, router http.Handler, token, text string) types.Item {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/items", token, map[string]any{"text": text})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create item status = %d, body %s", rec.Code, rec.Body.String())
	}
	var item types.Item
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	return item
}

func TestListIsScopedToOwnerNewestFirst(t *testing.T) {
	repo := newFakeItemRepo()
	router := newItemRouter(repo)
	alice := tokenFor(t, 1)
	bob := tokenFor(t, 2)

	// Interleave inserts across the two users.
	createItem(t, router, alice, "a first")
	createItem(t, router, bob, "b first")
	createItem(t, router, alice, "a second")
	createItem(t, router, bob, "b second")
	createItem(t, router, alice, "a third")

	rec := doJSON(t, router, http.MethodGet, "/items", alice, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var items []types.Item
	if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
		t.Fatalf("decode list: %v", err)
	}

	want := []string{"a third", "a second", "a first"}
	if len(items) != len(want) {
		t.Fatalf("list returned %d items, want %d", len(items), len(want))
	}
	for i, item := range items {
		if item.Text != want[i] {
			t.Fatalf("items[%d].Text = %q, want %q", i, item.Text, want[i])
		}
		if item.UserID != 1 {
			t.Fatalf("items[%d] owned by %d, want 1", i, item.UserID)
		}
	}
}

func TestCreateDefaultsAndForcedOwner(t *testing.T) {
	router := newItemRouter(newFakeItemRepo())

	item := createItem(t, router, tokenFor(t, 7), "buy milk")
	if item.Text != "buy milk" {
		t.Fatalf("text = %q", item.Text)
	}
	if item.Completed {
		t.Fatal("completed should default to false")
	}
	if item.UserID != 7 {
		t.Fatalf("owner = %d, want caller id 7", item.UserID)
	}
	if item.ID == 0 || item.CreatedAt.IsZero() {
		t.Fatalf("missing server-assigned fields: %+v", item)
	}
}

func TestCreateRejectsBlankText(t *testing.T) {
	repo := newFakeItemRepo()
	router := newItemRouter(repo)
	token := tokenFor(t, 1)

	for _, text := range []string{"", "   ", "\t\n"} {
		rec := doJSON(t, router, http.MethodPost, "/items", token, map[string]any{"text": text})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("create %q status = %d, want 400", text, rec.Code)
		}
	}
	if len(repo.items) != 0 {
		t.Fatalf("rejected creates must not touch storage, found %d items", len(repo.items))
	}
}

func TestGetHidesOtherUsersItems(t *testing.T) {
	router := newItemRouter(newFakeItemRepo())
	alice := tokenFor(t, 1)
	bob := tokenFor(t, 2)

	item := createItem(t, router, alice, "buy milk")

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/items/%d", item.ID), bob, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-user get status = %d, want 404", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "buy milk") {
		t.Fatal("cross-user get must never return the item body")
	}

	// The owner still sees it.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/items/%d", item.ID), alice, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner get status = %d", rec.Code)
	}
}

func TestMalformedItemIDIsNotFound(t *testing.T) {
	router := newItemRouter(newFakeItemRepo())
	token := tokenFor(t, 1)

	for _, raw := range []string{"abc", "0", "-3", "1.5"} {
		rec := doJSON(t, router, http.MethodGet, "/items/"+raw, token, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("get /items/%s status = %d, want 404", raw, rec.Code)
		}
	}
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	router := newItemRouter(newFakeItemRepo())
	token := tokenFor(t, 1)

	item := createItem(t, router, token, "original")

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/items/%d", item.ID), token, map[string]any{"completed": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("update completed status = %d", rec.Code)
	}
	var updated types.Item
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	if !updated.Completed || updated.Text != "original" {
		t.Fatalf("completed-only patch changed text: %+v", updated)
	}

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/items/%d", item.ID), token, map[string]any{"text": "renamed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update text status = %d", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	if updated.Text != "renamed" || !updated.Completed {
		t.Fatalf("text-only patch changed completed: %+v", updated)
	}
}

func TestUpdateRejectsBlankText(t *testing.T) {
	router := newItemRouter(newFakeItemRepo())
	token := tokenFor(t, 1)

	item := createItem(t, router, token, "keep me")

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/items/%d", item.ID), token, map[string]any{"text": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank text update status = %d, want 400", rec.Code)
	}
}

func TestUpdateAndDeleteHideOtherUsersItems(t *testing.T) {
	router := newItemRouter(newFakeItemRepo())
	alice := tokenFor(t, 1)
	bob := tokenFor(t, 2)

	item := createItem(t, router, alice, "private")

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/items/%d", item.ID), bob, map[string]any{"completed": true})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-user update status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/items/%d", item.ID), bob, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-user delete status = %d, want 404", rec.Code)
	}

	// Untouched for the owner.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/items/%d", item.ID), alice, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner get after cross-user attempts status = %d", rec.Code)
	}
}

func TestDeleteThenGet(t *testing.T) {
	router := newItemRouter(newFakeItemRepo())
	token := tokenFor(t, 1)

	item := createItem(t, router, token, "ephemeral")

	rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/items/%d", item.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	var confirmation MessageResponse
	if err := json.NewDecoder(rec.Body).Decode(&confirmation); err != nil {
		t.Fatalf("decode delete response: %v", err)
	}
	if confirmation.Message == "" {
		t.Fatal("delete should return a confirmation message")
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/items/%d", item.ID), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestItemRoutesRequireToken(t *testing.T) {
	router := newItemRouter(newFakeItemRepo())

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/items"},
		{http.MethodPost, "/items"},
		{http.MethodGet, "/items/1"},
		{http.MethodPut, "/items/1"},
		{http.MethodDelete, "/items/1"},
	} {
		rec := doJSON(t, router, tc.method, tc.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s status = %d, want 401", tc.method, tc.path, rec.Code)
		}
	}
}
