package events

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"

	"citybuddy/models"
)

// categoryKeywords maps query words to event categories.
var categoryKeywords = map[string]string{
	"tech":       "Tech",
	"startup":    "Startup",
	"networking": "Networking",
	"music":      "Music",
	"cultural":   "Cultural",
	"fitness":    "Fitness",
	"wellness":   "Wellness",
	"gaming":     "Gaming",
	"dance":      "Dance",
	"nature":     "Nature",
}

// locationKeywords are neighbourhood names recognized in queries.
var locationKeywords = []string{
	"cubbon",
	"hsr",
	"whitefield",
	"koramangala",
	"indiranagar",
	"jayanagar",
	"malleshwaram",
}

// Service answers event queries by keyword filtering over a static events
// table loaded once at startup.
type Service struct {
	events    []models.Event
	daysAhead int
	now       func() time.Time
}

// Load reads the events table from disk.
func Load(path string, daysAhead int) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open events file: %w", err)
	}
	defer f.Close()
	return LoadReader(f, daysAhead)
}

// LoadReader reads the events table from a reader. Rows with unparseable
// dates are skipped, not fatal; the table is best-effort community data.
func LoadReader(r io.Reader, daysAhead int) (*Service, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read events csv: %w", err)
	}

	s := &Service{daysAhead: daysAhead, now: time.Now}
	if len(rows) == 0 {
		return s, nil
	}

	index := map[string]int{}
	for i, name := range rows[0] {
		index[strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")] = i
	}

	for _, row := range rows[1:] {
		rawDate := cell(row, index, "date")
		// Some exports use a unicode non-breaking hyphen.
		rawDate = strings.ReplaceAll(rawDate, "‑", "-")
		date, err := time.Parse("2006-01-02", rawDate)
		if err != nil {
			log.Debugf("events: skipping row with bad date %q", rawDate)
			continue
		}
		s.events = append(s.events, models.Event{
			Name:        cell(row, index, "name"),
			Category:    cell(row, index, "category"),
			Venue:       cell(row, index, "venue"),
			Date:        date,
			Time:        cell(row, index, "time"),
			Description: cell(row, index, "description"),
		})
	}

	log.Infof("events table loaded: %d events", len(s.events))
	return s, nil
}

// Search filters upcoming events by keywords found in the query: at most one
// category filter and one venue filter, first keyword hit wins.
func (s *Service) Search(query string) *models.EventsResult {
	queryLower := strings.ToLower(query)

	categoryFilter := ""
	for keyword, cat := range categoryKeywords {
		if strings.Contains(queryLower, keyword) {
			categoryFilter = cat
			break
		}
	}

	locationFilter := ""
	for _, loc := range locationKeywords {
		if strings.Contains(queryLower, loc) {
			locationFilter = loc
			break
		}
	}

	today := s.now().Truncate(24 * time.Hour)
	end := today.AddDate(0, 0, s.daysAhead)

	var matched []models.Event
	for _, ev := range s.events {
		if ev.Date.Before(today) || ev.Date.After(end) {
			continue
		}
		if categoryFilter != "" && !strings.Contains(strings.ToLower(ev.Category), strings.ToLower(categoryFilter)) {
			continue
		}
		if locationFilter != "" && !strings.Contains(strings.ToLower(ev.Venue), locationFilter) {
			continue
		}
		ev.FormattedDate = ev.Date.Format("2006-01-02")
		ev.DayOfWeek = ev.Date.Weekday().String()
		matched = append(matched, ev)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Time < matched[j].Time
		}
		return matched[i].Date.Before(matched[j].Date)
	})

	result := &models.EventsResult{
		Events:     matched,
		TotalCount: len(matched),
		Locations:  uniqueVenues(matched),
		Categories: uniqueCategories(matched),
	}
	if len(matched) == 0 {
		result.Message = fmt.Sprintf("No upcoming events found in the next %d days.", s.daysAhead)
	} else {
		result.Message = fmt.Sprintf("Found %d upcoming events", len(matched))
	}
	return result
}

func uniqueVenues(events []models.Event) []string {
	seen := map[string]bool{}
	var venues []string
	for _, ev := range events {
		v := strings.TrimSpace(ev.Venue)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		venues = append(venues, v)
	}
	return venues
}

func uniqueCategories(events []models.Event) []string {
	seen := map[string]bool{}
	var categories []string
	for _, ev := range events {
		c := strings.TrimSpace(ev.Category)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}
	return categories
}

func cell(row []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
