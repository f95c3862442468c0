package draft

import (
	"fmt"
	"strconv"

	"citybuddy/category"
	"citybuddy/models"
)

// Placeholder values substituted for any assessment or location field that is
// missing. Composing a draft must never fail on absent data.
const (
	UnknownArea  = "Unknown Area"
	NotAvailable = "N/A"
)

// Compose renders a complaint email from an assessment and location context.
// Pure and deterministic: identical inputs produce byte-identical drafts. The
// assessment may be nil (the model's reply did not parse), in which case the
// "no issue detected" inspection-request branch is used with every field
// defaulted.
func Compose(d *category.Descriptor, a *models.Assessment, area string, coord *models.Coordinate) *models.EmailDraft {
	if area == "" {
		area = UnknownArea
	}
	lat, lon := NotAvailable, NotAvailable
	if coord != nil {
		lat = strconv.FormatFloat(coord.Latitude, 'f', -1, 64)
		lon = strconv.FormatFloat(coord.Longitude, 'f', -1, 64)
	}

	issuePresent := a != nil && a.IssuePresent
	severity := NotAvailable
	issueType := d.DefaultIssueType
	situation := d.DefaultSituation
	count := NotAvailable
	if a != nil {
		if a.Severity != "" {
			severity = a.Severity
		}
		if a.IssueType != "" {
			issueType = a.IssueType
		}
		if a.Situation != "" {
			situation = a.Situation
		}
		if a.PotholeCount > 0 {
			count = strconv.Itoa(a.PotholeCount)
		}
	}

	var subject, body string
	switch d.Name {
	case models.CategoryPothole:
		if issuePresent {
			subject = fmt.Sprintf("URGENT: Pothole Report - %s (Severity: %s)", area, severity)
			body = fmt.Sprintf(`Dear %s,

I am writing to report a pothole issue requiring immediate attention in %s.

Location Details:
- Area: %s
- Coordinates: %s, %s

Pothole Details:
- Number of Potholes: %s
- Severity Level: %s
- Description: %s

This issue poses a safety risk to commuters and requires urgent repair. Please dispatch a maintenance team to assess and fix this problem at the earliest.

I would appreciate an acknowledgment of this report and an estimated timeline for resolution.

Thank you for your prompt attention to this matter.
%s`, d.Addressee, area, area, lat, lon, count, severity, situation, signature)
		} else {
			subject = fmt.Sprintf("Road Condition Report - %s", area)
			body = fmt.Sprintf(`Dear %s,

I am writing to report a road condition concern in %s.

Location Details:
- Area: %s
- Coordinates: %s, %s

Issue Description:
No significant pothole was detected in the submitted image, but I would like to bring this road condition to your attention for review.

Please investigate this location and take appropriate action if necessary.

Thank you for your service to our city.
%s`, d.Addressee, area, area, lat, lon, signature)
		}

	case models.CategoryElectricity:
		if issuePresent {
			subject = fmt.Sprintf("URGENT: %s Issue - %s (Severity: %s)", issueType, area, severity)
			body = fmt.Sprintf(`Dear %s,

I am writing to report an urgent electrical issue requiring immediate attention in %s.

Location Details:
- Area: %s
- Coordinates: %s, %s

Issue Details:
- Type of Issue: %s
- Severity Level: %s
- Description: %s

This electrical issue may pose safety risks to residents and requires urgent attention. Please dispatch a maintenance team to assess and resolve this problem at the earliest.

I would appreciate an acknowledgment of this report and an estimated timeline for resolution.

Thank you for your prompt attention to this safety matter.
%s`, d.Addressee, area, area, lat, lon, issueType, severity, situation, signature)
		} else {
			subject = fmt.Sprintf("Electrical Infrastructure Review - %s", area)
			body = fmt.Sprintf(`Dear %s,

I am writing to request a review of electrical infrastructure in %s.

Location Details:
- Area: %s
- Coordinates: %s, %s

Issue Description:
No specific electrical issue was detected in the submitted image, but I would like to bring this location to your attention for a routine inspection.

Please review this location and ensure all electrical infrastructure is functioning properly.

Thank you for maintaining our city's electrical services.
%s`, d.Addressee, area, area, lat, lon, signature)
		}

	default: // trash
		if issuePresent {
			subject = fmt.Sprintf("Garbage/Waste Management Issue - %s (Severity: %s)", area, severity)
			body = fmt.Sprintf(`Dear %s,

I am writing to report a garbage and waste management issue requiring attention in %s.

Location Details:
- Area: %s
- Coordinates: %s, %s

Issue Details:
- Type of Waste: %s
- Severity Level: %s
- Description: %s

This waste accumulation is causing inconvenience to residents and may pose health risks if not addressed promptly. Please arrange for immediate cleaning and disposal of the waste at this location.

I would appreciate an acknowledgment of this report and timely action to resolve this issue.

Thank you for maintaining the cleanliness of our city.
%s`, d.Addressee, area, area, lat, lon, issueType, severity, situation, signature)
		} else {
			subject = fmt.Sprintf("Cleanliness Review - %s", area)
			body = fmt.Sprintf(`Dear %s,

I am writing to request a cleanliness review of %s.

Location Details:
- Area: %s
- Coordinates: %s, %s

Issue Description:
No significant waste accumulation was detected in the submitted image, but I would like to bring this location to your attention for a routine inspection.

Please review this location and ensure waste collection is functioning properly.

Thank you for maintaining the cleanliness of our city.
%s`, d.Addressee, area, area, lat, lon, signature)
		}
	}

	return &models.EmailDraft{
		To:      d.Recipient,
		Subject: subject,
		Body:    body,
	}
}

const signature = `
Best regards,
A Concerned Citizen

---
This report was generated through City Buddy AI Assistant.
For technical support, contact the system administrator.`
