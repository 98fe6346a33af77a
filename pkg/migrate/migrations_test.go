package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cynemos/smileinventory/pkg/migrate"
)

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_inventory.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no inventory migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE inventory_items",
		"CREATE TABLE inventory_movements",
		"REFERENCES products (id) ON DELETE CASCADE",
		"CHECK (quantity > 0)",
		"DROP TABLE IF EXISTS inventory_movements",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestProductsMigrationEnforcesUniqueSKU(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_products.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no products migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}

	if !strings.Contains(string(data), "CREATE UNIQUE INDEX idx_products_sku") {
		t.Fatalf("products migration missing unique SKU index")
	}
}
