package employee

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if _, ok := c.Position("Engineer"); !ok {
		t.Fatal("expected Engineer in default positions")
	}
	if len(c.Genders) == 0 {
		t.Fatal("expected default genders")
	}
}

func TestParseCatalogCleansOptions(t *testing.T) {
	c, err := ParseCatalog([]byte("positions: [' Cook ', cook, '', Driver]\ngenders: [F]\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(c.Positions) != 2 || c.Positions[0] != "Cook" || c.Positions[1] != "Driver" {
		t.Fatalf("unexpected positions %v", c.Positions)
	}
	got, ok := c.Position("COOK")
	if !ok || got != "Cook" {
		t.Fatalf("expected canonical Cook, got %q %v", got, ok)
	}
}

func TestParseCatalogRequiresPositions(t *testing.T) {
	if _, err := ParseCatalog([]byte("genders: [F]\n")); err == nil {
		t.Fatal("expected error for catalog without positions")
	}
	if _, err := ParseCatalog([]byte("positions: [")); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("positions: [Pilot]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok, _ := c.CheckPosition("Engineer"); ok {
		t.Fatal("expected file catalog to replace the default")
	}
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
