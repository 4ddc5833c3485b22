package units

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_HasAllTabsInOrder(t *testing.T) {
	t.Parallel()

	want := []string{"Length", "Temperature", "Area", "Volume", "Weight", "Time"}
	cats := Default().Categories()
	if len(cats) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(cats))
	}
	for i, name := range want {
		if cats[i].Name != name {
			t.Errorf("category[%d] = %q, want %q", i, cats[i].Name, name)
		}
	}
}

func TestDefault_TemperatureAllowsNegatives(t *testing.T) {
	t.Parallel()

	c := Default()
	temp, err := c.Category("temperature")
	if err != nil {
		t.Fatalf("Category: %v", err)
	}
	if temp.MinValue != nil {
		t.Errorf("expected no minimum for Temperature, got %v", *temp.MinValue)
	}
	weight, _ := c.Category("Weight")
	if weight.MinValue == nil || *weight.MinValue != 0 {
		t.Errorf("expected Weight minimum 0, got %v", weight.MinValue)
	}
}

func TestCategory_UnknownName(t *testing.T) {
	t.Parallel()

	_, err := Default().Category("Currency")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestCategory_HasUnit(t *testing.T) {
	t.Parallel()

	length, _ := Default().Category("Length")
	if !length.HasUnit("Miles") {
		t.Error("expected case-insensitive match for miles")
	}
	if length.HasUnit("liters") {
		t.Error("liters is not a length unit")
	}
}

func TestCategory_Unit_ReturnsCatalogSpelling(t *testing.T) {
	t.Parallel()

	temp, _ := Default().Category("Temperature")
	if got, ok := temp.Unit("fAhReNhEiT"); !ok || got != "Fahrenheit" {
		t.Errorf("Unit = %q, %v; want Fahrenheit, true", got, ok)
	}
	if _, ok := temp.Unit("rankine"); ok {
		t.Error("rankine is not in the catalog")
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	t.Parallel()

	c := Default()
	cats := c.Categories()
	cats[0].Name = "mutated"
	if c.First().Name != "Length" {
		t.Error("Categories() must not expose internal slice")
	}
}

func TestParse_Validation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":          `categories: []`,
		"duplicate":      "categories:\n  - {name: A, units: [x, y]}\n  - {name: a, units: [x, y]}\n",
		"too few units":  "categories:\n  - {name: A, units: [x]}\n",
		"blank name":     "categories:\n  - {name: ' ', units: [x, y]}\n",
		"blank unit":     "categories:\n  - {name: A, units: [x, ' ']}\n",
		"malformed yaml": "categories: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Errorf("expected error for %s", name)
			}
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "units.yaml")
	doc := "categories:\n  - name: Data\n    min_value: 0\n    units: [bytes, kilobytes, megabytes]\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.First().Name != "Data" || len(c.First().Units) != 3 {
		t.Errorf("unexpected catalog: %+v", c.Categories())
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	t.Parallel()

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.First().Name != "Length" {
		t.Errorf("expected default catalog, got %q", c.First().Name)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
