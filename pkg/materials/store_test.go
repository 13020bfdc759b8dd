package materials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "materials.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return store
}

func TestStoreSeedsBuiltIn(t *testing.T) {
	store := openTestStore(t)

	catalog, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(catalog) != len(BuiltIn()) {
		t.Fatalf("expected %d seeded materials, got %d", len(BuiltIn()), len(catalog))
	}

	pla, err := store.ByID(DefaultID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if pla.Name != "PLA" || pla.Density != 1.25 {
		t.Errorf("unexpected default material: %+v", pla)
	}
}

func TestStoreUnknownID(t *testing.T) {
	store := openTestStore(t)

	_, err := store.ByID(404)
	if err == nil {
		t.Fatal("expected error for unknown id")
	}

	var unknown *UnknownMaterialError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownMaterialError, got %T: %v", err, err)
	}
}

func TestStoreUpsert(t *testing.T) {
	store := openTestStore(t)

	if err := store.Upsert(Material{Name: "Nylon 12", Density: 1.01}); err != nil {
		t.Fatalf("Upsert insert failed: %v", err)
	}

	added, err := store.ByName("Nylon 12")
	if err != nil {
		t.Fatalf("ByName failed: %v", err)
	}
	if added.Density != 1.01 {
		t.Errorf("expected density 1.01, got %v", added.Density)
	}

	// Same name again updates the density in place.
	if err := store.Upsert(Material{Name: "Nylon 12", Density: 1.02}); err != nil {
		t.Fatalf("Upsert update failed: %v", err)
	}

	updated, err := store.ByName("Nylon 12")
	if err != nil {
		t.Fatalf("ByName failed: %v", err)
	}
	if updated.Density != 1.02 {
		t.Errorf("expected density 1.02 after update, got %v", updated.Density)
	}
}

func TestStoreUpsertRejectsNegativeDensity(t *testing.T) {
	store := openTestStore(t)

	if err := store.Upsert(Material{Name: "Bogus", Density: -1}); err == nil {
		t.Error("expected error for negative density")
	}
}

func TestStoreApplyOverrides(t *testing.T) {
	store := openTestStore(t)

	path := filepath.Join(t.TempDir(), "overrides.yaml")
	overrides := `materials:
  - name: PLA
    density: 1.24
  - name: Carbon PLA
    density: 1.30
`
	if err := os.WriteFile(path, []byte(overrides), 0o644); err != nil {
		t.Fatalf("failed to write overrides: %v", err)
	}

	if err := store.ApplyOverrides(path); err != nil {
		t.Fatalf("ApplyOverrides failed: %v", err)
	}

	pla, err := store.ByName("PLA")
	if err != nil {
		t.Fatalf("ByName failed: %v", err)
	}
	if pla.Density != 1.24 {
		t.Errorf("expected overridden PLA density 1.24, got %v", pla.Density)
	}

	if _, err := store.ByName("Carbon PLA"); err != nil {
		t.Errorf("expected new material from overrides: %v", err)
	}
}
