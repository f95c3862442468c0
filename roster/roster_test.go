package roster

import (
	"strings"
	"testing"

	"citybuddy/category"
	"citybuddy/models"
)

const municipalCSV = `Department,Area,Name,Designation,Phone,Email
BBMP (Ward),HSR Layout Ward 174,Ramesh Kumar,Assistant Executive Engineer,+91-9480683174,aee.hsr@bbmp.gov.in
BBMP (Ward),Indiranagar Ward 80,Lakshmi Narayan,Junior Health Inspector,+91-9480683080,jhi.indiranagar@bbmp.gov.in
BBMP (Ward),Indiranagar Ward 81,Second Match,Ward Engineer,+91-9480683081,we.indiranagar@bbmp.gov.in
BBMP (Ward),Malleshwaram Ward 45,No Phone Officer,Assistant Executive Engineer,,aee.malleshwaram@bbmp.gov.in
BESCOM (Division),Indiranagar Division,Wrong Department,Section Officer,+91-9449844080,so.indiranagar@bescom.co.in
`

func loadTestRoster(t *testing.T, data string) *Roster {
	t.Helper()
	r, err := Load(strings.NewReader(data))
	if err != nil {
		t.Fatalf("failed to load roster: %v", err)
	}
	return r
}

func TestLoadNormalizesHeaders(t *testing.T) {
	r := loadTestRoster(t, "DEPARTMENT, Area ,name,Designation,phone,E-Mail\nBBMP (Ward),HSR Layout,Test Officer,Engineer,12345,officer@bbmp.gov.in\n")
	if r.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", r.Len())
	}

	d := category.Lookup(models.CategoryTrash)
	rec := r.Find(d, "hsr")
	if rec == nil {
		t.Fatal("expected a match")
	}
	if rec.Email != "officer@bbmp.gov.in" {
		t.Errorf("expected e-mail column to map to email, got %q", rec.Email)
	}
}

func TestFind(t *testing.T) {
	r := loadTestRoster(t, municipalCSV)
	trash := category.Lookup(models.CategoryTrash)

	testCases := []struct {
		name         string
		locator      string
		expectedName string
	}{
		{name: "exact area fragment", locator: "HSR Layout", expectedName: "Ramesh Kumar"},
		{name: "case insensitive", locator: "hsr layout", expectedName: "Ramesh Kumar"},
		{name: "substring of full area", locator: "Indiranagar", expectedName: "Lakshmi Narayan"},
		{name: "no match", locator: "Whitefield", expectedName: ""},
		{name: "empty locator", locator: "", expectedName: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := r.Find(trash, tc.locator)
			if tc.expectedName == "" {
				if rec != nil {
					t.Errorf("expected no match, got %+v", rec)
				}
				return
			}
			if rec == nil {
				t.Fatal("expected a match, got nil")
			}
			if rec.Name != tc.expectedName {
				t.Errorf("expected %s, got %s", tc.expectedName, rec.Name)
			}
		})
	}
}

func TestFindFirstMatchWins(t *testing.T) {
	r := loadTestRoster(t, municipalCSV)
	d := category.Lookup(models.CategoryPothole)

	// Two Indiranagar wards qualify; the earlier row is returned.
	rec := r.Find(d, "Indiranagar")
	if rec == nil {
		t.Fatal("expected a match")
	}
	if rec.Name != "Lakshmi Narayan" {
		t.Errorf("expected first matching row, got %s", rec.Name)
	}
}

func TestFindDepartmentFilter(t *testing.T) {
	r := loadTestRoster(t, municipalCSV)

	// The BESCOM row also matches "Indiranagar" by area but must never serve
	// a municipal complaint.
	d := category.Lookup(models.CategoryTrash)
	rec := r.Find(d, "Indiranagar")
	if rec == nil {
		t.Fatal("expected a match")
	}
	if rec.Department != "BBMP (Ward)" {
		t.Errorf("expected a BBMP record, got %s", rec.Department)
	}

	electricity := category.Lookup(models.CategoryElectricity)
	rec = r.Find(electricity, "Indiranagar")
	if rec == nil {
		t.Fatal("expected a BESCOM match")
	}
	if rec.Name != "Wrong Department" {
		t.Errorf("expected the BESCOM row, got %s", rec.Name)
	}
}

func TestFindRequiresPhone(t *testing.T) {
	r := loadTestRoster(t, municipalCSV)

	// Trash lookups skip roster rows without a phone number.
	trash := category.Lookup(models.CategoryTrash)
	if rec := r.Find(trash, "Malleshwaram"); rec != nil {
		t.Errorf("expected no match for phoneless row, got %+v", rec)
	}
}

func TestFindPhoneOptionalForElectricity(t *testing.T) {
	r := loadTestRoster(t, "Department,Area,Name,Designation,Phone,Email\nBESCOM (Division),Whitefield Division,Manjunath S,Engineer,,aee.whitefield@bescom.co.in\n")

	electricity := category.Lookup(models.CategoryElectricity)
	rec := r.Find(electricity, "Whitefield")
	if rec == nil {
		t.Fatal("expected a match despite missing phone")
	}
	if rec.Name != "Manjunath S" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestLoadEmpty(t *testing.T) {
	r := loadTestRoster(t, "")
	if r.Len() != 0 {
		t.Errorf("expected empty roster, got %d rows", r.Len())
	}
	d := category.Lookup(models.CategoryTrash)
	if rec := r.Find(d, "anywhere"); rec != nil {
		t.Errorf("expected nil from empty roster, got %+v", rec)
	}
}
