package repository

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"deutschklasse_go/models"
)

func TestCreateExamFocusAreasKeepOrder(t *testing.T) {
	db := newTestDB(t)

	areas := []string{"虚拟式", "被动语态", "从句语序"}
	exam, err := CreateExam(db, CreateExamInput{
		ExamCode: "EXM-20260829120000-ab12", TeacherUserID: 1,
		GrammarItems: 15, WritingItems: 2, Strategy: "personalized",
		FocusAreas: areas,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := GetExamByCode(db, exam.ExamCode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded []string
	if err := json.Unmarshal(got.FocusAreas, &decoded); err != nil {
		t.Fatalf("decode focus areas: %v", err)
	}
	if !reflect.DeepEqual(decoded, areas) {
		t.Fatalf("focus areas order lost: %v != %v", decoded, areas)
	}
}

func TestCreateExamValidation(t *testing.T) {
	db := newTestDB(t)

	tests := []struct {
		name string
		in   CreateExamInput
	}{
		{
			name: "invalid strategy",
			in:   CreateExamInput{ExamCode: "EXM-x", TeacherUserID: 1, Strategy: "random"},
		},
		{
			name: "negative grammar items",
			in:   CreateExamInput{ExamCode: "EXM-y", TeacherUserID: 1, Strategy: "unified", GrammarItems: -1},
		},
		{
			name: "missing teacher",
			in:   CreateExamInput{ExamCode: "EXM-z", Strategy: "unified"},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := CreateExam(db, tc.in); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateOrGetExamAssignmentIdempotent(t *testing.T) {
	db := newTestDB(t)

	exam, err := CreateExam(db, CreateExamInput{
		ExamCode: "EXM-20260829120001-cd34", TeacherUserID: 1, Strategy: "unified",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := CreateOrGetExamAssignment(db, exam.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := CreateOrGetExamAssignment(db, exam.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same assignment row, got %d and %d", first.ID, second.ID)
	}
	if second.Status != "assigned" {
		t.Fatalf("expected status %q, got %q", "assigned", second.Status)
	}

	var count int64
	if err := db.Model(&models.ExamAssignment{}).
		Where("exam_id = ?", exam.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one assignment, got %d", count)
	}
}
