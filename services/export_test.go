package services

import (
	"testing"
)

func TestExportClassroomRoster(t *testing.T) {
	db := newTestDB(t)
	ps := NewProvisioningService()

	_, classroom, err := ps.EnsureBaseline(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := ExportClassroomRoster(db, classroom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Roster")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	// Header plus one row per demo student.
	if len(rows) != 1+len(demoStudents) {
		t.Fatalf("expected %d rows, got %d", 1+len(demoStudents), len(rows))
	}
	if rows[0][0] != "UID" || rows[0][1] != "Name" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}

	// Roster is ordered by uid.
	if rows[1][0] != "2452001" || rows[1][1] != "李娜" {
		t.Fatalf("unexpected first student row: %v", rows[1])
	}
	if rows[2][0] != "2452002" || rows[2][1] != "王强" {
		t.Fatalf("unexpected second student row: %v", rows[2])
	}
	// Ability columns come from the derived upsert, not the raw profile.
	if rows[1][6] != "89" {
		t.Fatalf("expected listening 89 for 2452001, got %q", rows[1][6])
	}
}

func TestRosterExportFileName(t *testing.T) {
	_, classroom, err := NewProvisioningService().EnsureBaseline(newTestDB(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := RosterExportFileName(classroom); got != "roster-SE-2026-4.xlsx" {
		t.Fatalf("unexpected file name %q", got)
	}
}
