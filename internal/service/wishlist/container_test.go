package wishlist

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/storage"
)

type failingStore struct {
	storage.Store
	err error
}

func (f *failingStore) Set(context.Context, string, string) error { return f.err }

func TestAddRemoveContains(t *testing.T) {
	ctx := context.Background()
	w, err := Load(ctx, storage.NewMemory(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := w.Add(ctx, "3"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Add(ctx, "3"); err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if !w.Contains("3") || w.Len() != 1 {
		t.Fatalf("expected exactly one membership, ids=%v", w.IDs())
	}

	if err := w.Remove(ctx, "3"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if w.Contains("3") {
		t.Fatalf("expected 3 to be removed")
	}
	if err := w.Remove(ctx, "3"); err != nil {
		t.Fatalf("removing an absent id must be a no-op, got %v", err)
	}
}

func TestLoad_Persisted(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	w, _ := Load(ctx, store, nil)
	_ = w.Add(ctx, "2")
	_ = w.Add(ctx, "5")
	_ = w.Add(ctx, "1")

	reloaded, err := Load(ctx, store, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	ids := reloaded.IDs()
	if len(ids) != 3 || ids[0] != "2" || ids[1] != "5" || ids[2] != "1" {
		t.Fatalf("unexpected reloaded ids %v", ids)
	}
}

func TestLoad_DropsDuplicateIDs(t *testing.T) {
	store := storage.NewMemory()
	_ = store.Set(context.Background(), StoreKey, `["1","1","2"]`)
	w, err := Load(context.Background(), store, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w.Len() != 2 {
		t.Fatalf("expected duplicates to collapse, got %v", w.IDs())
	}
}

func TestProducts_CatalogOrder(t *testing.T) {
	ctx := context.Background()
	w, _ := Load(ctx, storage.NewMemory(), nil)
	_ = w.Add(ctx, "3")
	_ = w.Add(ctx, "1")
	_ = w.Add(ctx, "gone")

	catalog := []domain.Product{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	got := w.Products(catalog)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected products %+v", got)
	}
}

func TestFailedPersistLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	w, _ := Load(ctx, mem, nil)
	_ = w.Add(ctx, "1")

	boom := errors.New("unavailable")
	w.store = &failingStore{Store: mem, err: boom}

	if err := w.Add(ctx, "2"); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if err := w.Remove(ctx, "1"); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if !w.Contains("1") || w.Contains("2") {
		t.Fatalf("failed writes must not change membership, ids=%v", w.IDs())
	}
}
