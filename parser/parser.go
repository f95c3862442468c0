package parser

import (
	"encoding/json"
	"errors"
	"strings"

	"citybuddy/category"
	"citybuddy/models"
)

// ExtractJSONFromMarkdown extracts JSON from markdown code blocks
func ExtractJSONFromMarkdown(response string) string {
	// Look for JSON code blocks with ``` markers
	startMarker := "```"
	endMarker := "```"

	startIdx := strings.Index(response, startMarker)
	if startIdx == -1 {
		// No code block found, try to find JSON object directly
		startIdx = strings.Index(response, "{")
		if startIdx == -1 {
			return response
		}
		endIdx := strings.LastIndex(response, "}")
		if endIdx == -1 {
			return response
		}
		return strings.TrimSpace(response[startIdx : endIdx+1])
	}

	// Find the end of the first code block
	endIdx := strings.Index(response[startIdx+len(startMarker):], endMarker)
	if endIdx == -1 {
		return response
	}
	endIdx += startIdx + len(startMarker)

	// Extract content between the markers
	content := response[startIdx+len(startMarker) : endIdx]

	// Remove the language identifier if present (e.g., "json")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) > 0 && (strings.TrimSpace(lines[0]) == "json" || strings.TrimSpace(lines[0]) == "") {
		content = strings.Join(lines[1:], "\n")
	}

	return strings.TrimSpace(content)
}

// ParseAssessment parses the model's reply for a category into an Assessment.
// The reply is untrusted: fields may be absent and keep their zero value, but
// a reply that is not a JSON object at all is an error the caller must absorb
// (the pipeline continues with defaults; it never aborts on a parse failure).
func ParseAssessment(d *category.Descriptor, response string) (*models.Assessment, error) {
	cleaned := strings.TrimSpace(response)
	jsonContent := ExtractJSONFromMarkdown(cleaned)

	var raw map[string]any
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		return nil, errors.New("failed to parse JSON response: " + err.Error())
	}

	a := &models.Assessment{
		IssuePresent: boolValue(raw, d.PresenceKey),
		Locator:      stringValue(raw, d.LocatorKey),
		Severity:     stringValue(raw, "severity"),
		Situation:    stringValue(raw, "situation_description"),
		Advice:       stringValue(raw, "actionable_advice"),
	}
	if d.IssueKey != "" {
		a.IssueType = stringValue(raw, d.IssueKey)
	}
	if d.Name == models.CategoryPothole {
		a.PotholeCount = intValue(raw, "pothole_count")
	}
	return a, nil
}

func stringValue(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func boolValue(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func intValue(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case string:
		// Models occasionally quote numbers.
		n := 0
		for _, r := range v {
			if r < '0' || r > '9' {
				return 0
			}
			n = n*10 + int(r-'0')
		}
		return n
	}
	return 0
}
