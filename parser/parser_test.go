package parser

import (
	"testing"

	"citybuddy/category"
	"citybuddy/models"
)

func TestExtractJSONFromMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"severity\": \"High\"}\n```",
			expected: "{\"severity\": \"High\"}",
		},
		{
			name:     "bare code block",
			input:    "```\n{\"severity\": \"Low\"}\n```",
			expected: "{\"severity\": \"Low\"}",
		},
		{
			name:     "object with surrounding prose",
			input:    "Here is the result: {\"severity\": \"Medium\"} Hope this helps.",
			expected: "{\"severity\": \"Medium\"}",
		},
		{
			name:     "plain json",
			input:    "{\"severity\": \"High\"}",
			expected: "{\"severity\": \"High\"}",
		},
		{
			name:     "no json at all",
			input:    "no structured data here",
			expected: "no structured data here",
		},
		{
			name:     "unterminated code block",
			input:    "```json\n{\"severity\": \"High\"}",
			expected: "```json\n{\"severity\": \"High\"}",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractJSONFromMarkdown(tc.input)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestParseAssessmentTrash(t *testing.T) {
	d := category.Lookup(models.CategoryTrash)
	response := "```json\n" + `{
		"is_trash_present": true,
		"ward_name": "HSR Layout",
		"trash_type": "Construction debris",
		"severity": "High",
		"situation_description": "A large pile of debris blocks the footpath.",
		"actionable_advice": "Requires immediate municipal attention."
	}` + "\n```"

	a, err := ParseAssessment(d, response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.IssuePresent {
		t.Error("expected issue present")
	}
	if a.Locator != "HSR Layout" {
		t.Errorf("expected locator HSR Layout, got %q", a.Locator)
	}
	if a.IssueType != "Construction debris" {
		t.Errorf("expected issue type Construction debris, got %q", a.IssueType)
	}
	if a.Severity != "High" {
		t.Errorf("expected severity High, got %q", a.Severity)
	}
	if a.PotholeCount != 0 {
		t.Errorf("expected pothole count 0 for trash, got %d", a.PotholeCount)
	}
}

func TestParseAssessmentPothole(t *testing.T) {
	d := category.Lookup(models.CategoryPothole)

	testCases := []struct {
		name          string
		response      string
		expectedCount int
	}{
		{
			name:          "numeric count",
			response:      `{"is_pothole_present": true, "ward_name": "Jayanagar", "pothole_count": 3, "severity": "Medium"}`,
			expectedCount: 3,
		},
		{
			name:          "quoted count",
			response:      `{"is_pothole_present": true, "ward_name": "Jayanagar", "pothole_count": "2", "severity": "Low"}`,
			expectedCount: 2,
		},
		{
			name:          "missing count",
			response:      `{"is_pothole_present": true, "ward_name": "Jayanagar"}`,
			expectedCount: 0,
		},
		{
			name:          "non numeric quoted count",
			response:      `{"is_pothole_present": true, "pothole_count": "several"}`,
			expectedCount: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := ParseAssessment(d, tc.response)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.PotholeCount != tc.expectedCount {
				t.Errorf("expected count %d, got %d", tc.expectedCount, a.PotholeCount)
			}
		})
	}
}

func TestParseAssessmentElectricity(t *testing.T) {
	d := category.Lookup(models.CategoryElectricity)
	response := `{"issue_present": true, "division_name": "Indiranagar Division", "issue_type": "Street Light", "severity": "High"}`

	a, err := ParseAssessment(d, response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Locator != "Indiranagar Division" {
		t.Errorf("expected division locator, got %q", a.Locator)
	}
	if a.IssueType != "Street Light" {
		t.Errorf("expected issue type Street Light, got %q", a.IssueType)
	}
}

func TestParseAssessmentMissingFieldsDefault(t *testing.T) {
	d := category.Lookup(models.CategoryTrash)

	a, err := ParseAssessment(d, `{}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.IssuePresent {
		t.Error("expected issue absent for empty object")
	}
	if a.Locator != "" || a.Severity != "" || a.IssueType != "" {
		t.Errorf("expected zero values, got %+v", a)
	}
}

func TestParseAssessmentInvalidJSON(t *testing.T) {
	d := category.Lookup(models.CategoryTrash)

	testCases := []string{
		"I could not analyze this image.",
		"{\"is_trash_present\": tru",
		"",
	}
	for _, response := range testCases {
		if _, err := ParseAssessment(d, response); err == nil {
			t.Errorf("expected error for %q", response)
		}
	}
}
