package category

import (
	"fmt"
	"strings"

	"citybuddy/models"
)

// Descriptor parameterizes the per-issue analysis pipeline. The three civic
// categories differ only in prompt, response key set, roster and templates,
// so one descriptor-driven pipeline replaces three near-identical agents.
type Descriptor struct {
	Name models.Category

	// Department tag matched exactly against the roster's department column.
	Department string
	// RequirePhone rejects roster rows without a phone number.
	RequirePhone bool

	// JSON keys in the model's reply.
	PresenceKey string
	LocatorKey  string
	IssueKey    string // trash_type / issue_type; empty for pothole

	// Email drafting.
	Recipient        string
	Addressee        string // salutation target, e.g. "BBMP Official"
	DefaultIssueType string
	DefaultSituation string

	// Fallback contact when no roster row matches.
	Helpline string

	promptIntro string
	promptBody  string
}

var trash = Descriptor{
	Name:             models.CategoryTrash,
	Department:       "BBMP (Ward)",
	RequirePhone:     true,
	PresenceKey:      "is_trash_present",
	LocatorKey:       "ward_name",
	IssueKey:         "trash_type",
	Recipient:        "info@bbmp.gov.in",
	Addressee:        "BBMP Official",
	DefaultIssueType: "Mixed waste",
	DefaultSituation: "Trash issue reported by citizen",
	Helpline:         "BBMP Helpline: 22660000 or 080-22660000",
	promptIntro:      "Analyze the attached image of a garbage pile in Bengaluru, India.",
	promptBody: `Based on this information, return the most likely BBMP ward or area name as it would appear in the city officials database (for lookup purposes).
Then, provide a structured JSON response with the following keys:
- "is_trash_present": A boolean (true or false) indicating if garbage or litter is visible.
- "ward_name": The best-matching ward/area name for the officials database. Use the geocoded area as a hint.
- "trash_type": Briefly describe the primary type of trash visible (e.g., "Mixed municipal solid waste", "Construction debris", "Plastic waste").
- "severity": Rate the severity on a scale of 'Low', 'Medium', or 'High' based on the volume and potential hazard.
- "situation_description": A one-sentence summary of the situation.
- "actionable_advice": Suggest a one-sentence action for a citizen (e.g., "This requires immediate attention from the municipal authorities.").
Only output the raw JSON object, with no other text or markdown. If no trash is present, set "is_trash_present" to false and provide default values for other keys.`,
}

var pothole = Descriptor{
	Name:             models.CategoryPothole,
	Department:       "BBMP (Ward)",
	RequirePhone:     true,
	PresenceKey:      "is_pothole_present",
	LocatorKey:       "ward_name",
	Recipient:        "info@bbmp.gov.in",
	Addressee:        "BBMP Official",
	DefaultIssueType: "Pothole",
	DefaultSituation: "Pothole reported by citizen",
	Helpline:         "BBMP Helpline: 22660000 or 080-22660000",
	promptIntro:      "Analyze the attached image of a road surface in Bengaluru, India.",
	promptBody: `First, determine if one or more potholes are clearly visible.
Then, provide a structured JSON response with the following keys:
- "is_pothole_present": A boolean (true or false).
- "ward_name": The best-matching BBMP ward/area name for lookup in an officials database. Use the geocoded area as a hint.
- "pothole_count": An integer for the number of distinct potholes visible.
- "severity": A rating of 'Low', 'Medium', or 'High' for the worst pothole visible. 'Low' for small/shallow, 'Medium' for moderate size, 'High' for large, deep, or hazardous-looking potholes.
- "situation_description": A one-sentence summary of the situation (e.g., "A large, water-filled pothole is visible in the center of the road.").
- "actionable_advice": Suggest a one-sentence action for a citizen (e.g., "This should be reported to the BBMP for urgent road repair.").
Only output the raw JSON object, with no other text or markdown. If no pothole is present, set "is_pothole_present" to false and provide default values for other keys.`,
}

var electricity = Descriptor{
	Name:             models.CategoryElectricity,
	Department:       "BESCOM (Division)",
	RequirePhone:     false,
	PresenceKey:      "issue_present",
	LocatorKey:       "division_name",
	IssueKey:         "issue_type",
	Recipient:        "info@bescom.co.in",
	Addressee:        "BESCOM Official",
	DefaultIssueType: "Electrical Issue",
	DefaultSituation: "Electrical issue reported by citizen",
	Helpline:         "BESCOM Helpline: 1912 or 080-22294411",
	promptIntro:      "Analyze the attached image for electricity or street lighting issues in Bengaluru, India.",
	promptBody: `Look for issues such as:
- Street lights not working or damaged
- Power lines down or damaged
- Electrical poles damaged or leaning
- Transformer issues
- Power outages affecting street lighting
- Exposed electrical wires
- Any other electrical infrastructure problems

Provide a structured JSON response with the following keys:
- "issue_present": A boolean (true or false) indicating if an electrical issue is visible.
- "division_name": The best-matching BESCOM division/area name for lookup in the officials database. Use the geocoded area as a hint.
- "issue_type": Category like "Street Light", "Power Line", "Transformer", "Electrical Pole", "Power Outage", "Exposed Wiring", or "Other".
- "severity": A rating of 'Low', 'Medium', or 'High'. 'Low' for minor issues, 'Medium' for moderate problems, 'High' for dangerous or urgent issues.
- "situation_description": A one-sentence summary of the electrical issue (e.g., "Street light pole is damaged and not functioning.").
- "actionable_advice": Suggest a one-sentence action for a citizen (e.g., "This should be reported to BESCOM immediately for safety reasons.").
Only output the raw JSON object, with no other text or markdown. If no electrical issue is present, set "issue_present" to false and provide default values for other keys.`,
}

var byName = map[models.Category]*Descriptor{
	models.CategoryTrash:       &trash,
	models.CategoryPothole:     &pothole,
	models.CategoryElectricity: &electricity,
}

// Lookup returns the descriptor for a category, or nil for an unknown one.
func Lookup(name models.Category) *Descriptor {
	return byName[name]
}

// All returns every registered descriptor.
func All() []*Descriptor {
	return []*Descriptor{&trash, &pothole, &electricity}
}

// Prompt composes the category instruction prompt, embedding the location
// hints when present.
func (d *Descriptor) Prompt(coord *models.Coordinate, area string) string {
	var loc strings.Builder
	if coord != nil {
		fmt.Fprintf(&loc, "The photo was taken at latitude %v, longitude %v.\n", coord.Latitude, coord.Longitude)
	}
	if area != "" {
		fmt.Fprintf(&loc, "The geocoding service suggests the area is '%s'.\n", area)
	}
	return d.promptIntro + "\n" + loc.String() + "\n" + d.promptBody
}
