package category

import (
	"strings"
	"testing"

	"citybuddy/models"
)

func TestLookup(t *testing.T) {
	for _, cat := range []models.Category{models.CategoryTrash, models.CategoryPothole, models.CategoryElectricity} {
		d := Lookup(cat)
		if d == nil {
			t.Fatalf("expected descriptor for %s", cat)
		}
		if d.Name != cat {
			t.Errorf("expected name %s, got %s", cat, d.Name)
		}
	}

	if d := Lookup("graffiti"); d != nil {
		t.Errorf("expected nil for unknown category, got %+v", d)
	}
}

func TestDescriptorKeys(t *testing.T) {
	trash := Lookup(models.CategoryTrash)
	if trash.PresenceKey != "is_trash_present" || trash.LocatorKey != "ward_name" {
		t.Errorf("unexpected trash keys: %+v", trash)
	}

	pothole := Lookup(models.CategoryPothole)
	if pothole.IssueKey != "" {
		t.Errorf("pothole should have no issue key, got %q", pothole.IssueKey)
	}

	electricity := Lookup(models.CategoryElectricity)
	if electricity.PresenceKey != "issue_present" || electricity.LocatorKey != "division_name" {
		t.Errorf("unexpected electricity keys: %+v", electricity)
	}
	if electricity.RequirePhone {
		t.Error("electricity roster rows should not require a phone")
	}
}

func TestPromptEmbedsLocation(t *testing.T) {
	d := Lookup(models.CategoryPothole)
	coord := &models.Coordinate{Latitude: 12.9716, Longitude: 77.5946}

	prompt := d.Prompt(coord, "HSR Layout")
	if !strings.Contains(prompt, "12.9716") || !strings.Contains(prompt, "77.5946") {
		t.Error("expected coordinates in prompt")
	}
	if !strings.Contains(prompt, "'HSR Layout'") {
		t.Error("expected geocoded area in prompt")
	}
	if !strings.Contains(prompt, "is_pothole_present") {
		t.Error("expected category schema in prompt")
	}
}

func TestPromptWithoutLocation(t *testing.T) {
	d := Lookup(models.CategoryTrash)
	prompt := d.Prompt(nil, "")
	if strings.Contains(prompt, "latitude") {
		t.Error("expected no coordinate line without a coordinate")
	}
	if strings.Contains(prompt, "geocoding service") {
		t.Error("expected no area line without an area")
	}
}
