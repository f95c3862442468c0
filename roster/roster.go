package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"citybuddy/category"
	"citybuddy/config"
	"citybuddy/models"
)

// Roster is a static, read-only table of government contacts, loaded once per
// process and matched by (department, area substring).
type Roster struct {
	records []models.OfficialRecord
}

// Set holds every department roster the service knows about. Trash and
// pothole complaints share the municipal roster; electricity has its own.
type Set struct {
	Municipal   *Roster
	Electricity *Roster
}

// LoadSet reads the roster files named in the configuration.
func LoadSet(cfg *config.Config) (*Set, error) {
	municipal, err := LoadFile(filepath.Join(cfg.DataDir, cfg.MunicipalRoster))
	if err != nil {
		return nil, fmt.Errorf("failed to load municipal roster: %w", err)
	}
	electricity, err := LoadFile(filepath.Join(cfg.DataDir, cfg.ElectricityRoster))
	if err != nil {
		return nil, fmt.Errorf("failed to load electricity roster: %w", err)
	}
	log.Infof("rosters loaded: %d municipal, %d electricity rows", len(municipal.records), len(electricity.records))
	return &Set{Municipal: municipal, Electricity: electricity}, nil
}

// For returns the roster serving a category.
func (s *Set) For(d *category.Descriptor) *Roster {
	if d.Name == models.CategoryElectricity {
		return s.Electricity
	}
	return s.Municipal
}

// LoadFile reads a roster CSV from disk.
func LoadFile(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a roster CSV. Column names are normalized (trimmed, lower-cased,
// spaces replaced by underscores) before mapping, so "Contact Name" and
// "contact_name" address the same column.
func Load(r io.Reader) (*Roster, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster csv: %w", err)
	}
	if len(rows) == 0 {
		return &Roster{}, nil
	}

	index := map[string]int{}
	for i, name := range rows[0] {
		index[normalizeHeader(name)] = i
	}

	roster := &Roster{}
	for _, row := range rows[1:] {
		rec := models.OfficialRecord{
			Department:  cell(row, index, "department"),
			Area:        cell(row, index, "area"),
			Name:        cell(row, index, "name"),
			Designation: cell(row, index, "designation"),
			Phone:       cell(row, index, "phone"),
			Email:       cell(row, index, "email"),
		}
		if rec.Email == "" {
			rec.Email = cell(row, index, "e-mail")
		}
		roster.records = append(roster.records, rec)
	}
	return roster, nil
}

// Find returns the first record, in file order, whose department equals the
// descriptor's department tag and whose area contains the locator as a
// case-insensitive substring. First-match-wins is a documented tie-break, not
// a relevance ranking. A nil result is expected and callers fall back to the
// departmental helpline.
func (r *Roster) Find(d *category.Descriptor, locator string) *models.OfficialRecord {
	if locator == "" {
		return nil
	}
	needle := strings.ToLower(locator)
	for i := range r.records {
		rec := &r.records[i]
		if rec.Department != d.Department {
			continue
		}
		if !strings.Contains(strings.ToLower(rec.Area), needle) {
			continue
		}
		if d.RequirePhone && strings.TrimSpace(rec.Phone) == "" {
			continue
		}
		return rec
	}
	return nil
}

// Len reports the number of loaded rows.
func (r *Roster) Len() int {
	return len(r.records)
}

func normalizeHeader(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func cell(row []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
