package draft

import (
	"strings"
	"testing"

	"citybuddy/category"
	"citybuddy/models"
)

func TestComposeElectricityUrgent(t *testing.T) {
	d := category.Lookup(models.CategoryElectricity)
	a := &models.Assessment{
		IssuePresent: true,
		IssueType:    "Street Light",
		Severity:     "High",
		Situation:    "Street light pole is damaged and not functioning.",
	}
	coord := &models.Coordinate{Latitude: 12.9716, Longitude: 77.5946}

	email := Compose(d, a, "Indiranagar", coord)

	if email.To != "info@bescom.co.in" {
		t.Errorf("unexpected recipient %q", email.To)
	}
	expected := "URGENT: Street Light Issue - Indiranagar (Severity: High)"
	if email.Subject != expected {
		t.Errorf("expected subject %q, got %q", expected, email.Subject)
	}
	if !strings.Contains(email.Body, "Dear BESCOM Official") {
		t.Error("expected BESCOM salutation")
	}
	if !strings.Contains(email.Body, "12.9716, 77.5946") {
		t.Error("expected coordinates in body")
	}
	if !strings.Contains(email.Body, a.Situation) {
		t.Error("expected situation description in body")
	}
}

func TestComposePotholeUrgent(t *testing.T) {
	d := category.Lookup(models.CategoryPothole)
	a := &models.Assessment{
		IssuePresent: true,
		PotholeCount: 3,
		Severity:     "Medium",
		Situation:    "Three potholes across the carriageway.",
	}

	email := Compose(d, a, "Jayanagar", &models.Coordinate{Latitude: 12.93, Longitude: 77.58})

	if !strings.HasPrefix(email.Subject, "URGENT: Pothole Report - Jayanagar") {
		t.Errorf("unexpected subject %q", email.Subject)
	}
	if !strings.Contains(email.Body, "Number of Potholes: 3") {
		t.Error("expected pothole count in body")
	}
}

func TestComposeTrashPresent(t *testing.T) {
	d := category.Lookup(models.CategoryTrash)
	a := &models.Assessment{
		IssuePresent: true,
		IssueType:    "Construction debris",
		Severity:     "High",
	}

	email := Compose(d, a, "HSR Layout", nil)

	if email.To != "info@bbmp.gov.in" {
		t.Errorf("unexpected recipient %q", email.To)
	}
	if !strings.Contains(email.Subject, "Garbage/Waste Management Issue - HSR Layout") {
		t.Errorf("unexpected subject %q", email.Subject)
	}
	if !strings.Contains(email.Body, "Type of Waste: Construction debris") {
		t.Error("expected waste type in body")
	}
	if !strings.Contains(email.Body, "Coordinates: N/A, N/A") {
		t.Error("expected coordinate placeholders without a coordinate")
	}
}

func TestComposeNoIssueBranch(t *testing.T) {
	testCases := []struct {
		cat      models.Category
		expected string
	}{
		{cat: models.CategoryTrash, expected: "Cleanliness Review - Unknown Area"},
		{cat: models.CategoryPothole, expected: "Road Condition Report - Unknown Area"},
		{cat: models.CategoryElectricity, expected: "Electrical Infrastructure Review - Unknown Area"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.cat), func(t *testing.T) {
			d := category.Lookup(tc.cat)
			email := Compose(d, &models.Assessment{IssuePresent: false}, "", nil)
			if email.Subject != tc.expected {
				t.Errorf("expected subject %q, got %q", tc.expected, email.Subject)
			}
		})
	}
}

func TestComposeNilAssessment(t *testing.T) {
	d := category.Lookup(models.CategoryTrash)

	email := Compose(d, nil, "", nil)

	if email == nil {
		t.Fatal("expected a draft even without an assessment")
	}
	if email.Subject != "Cleanliness Review - Unknown Area" {
		t.Errorf("expected inspection subject, got %q", email.Subject)
	}
	if !strings.Contains(email.Body, "Unknown Area") {
		t.Error("expected area placeholder in body")
	}
}

func TestComposeDeterministic(t *testing.T) {
	d := category.Lookup(models.CategoryPothole)
	a := &models.Assessment{IssuePresent: true, Severity: "Low", PotholeCount: 1}
	coord := &models.Coordinate{Latitude: 12.9, Longitude: 77.6}

	first := Compose(d, a, "BTM Layout", coord)
	second := Compose(d, a, "BTM Layout", coord)

	if first.Subject != second.Subject || first.Body != second.Body || first.To != second.To {
		t.Error("expected identical drafts for identical inputs")
	}
}
