package repository

import (
	"errors"
	"testing"
	"time"
)

func TestUpdateHomeworkScoreFeedback(t *testing.T) {
	db := newTestDB(t)

	hw, err := CreateHomework(db, CreateHomeworkInput{
		StudentID: 1, Title: "德语写作作业-第3周", Status: "已完成",
		AIComment: "初始点评",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Score always overwrites; empty feedback leaves the comment alone.
	updated, err := UpdateHomeworkScoreFeedback(db, hw.ID, 85, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Score == nil || *updated.Score != 85 {
		t.Fatalf("expected score 85, got %v", updated.Score)
	}

	got, err := GetHomeworkByID(db, hw.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AIComment != "初始点评" {
		t.Fatalf("empty feedback must not clear ai_comment, got %q", got.AIComment)
	}

	// Non-empty feedback overwrites the comment.
	if _, err := UpdateHomeworkScoreFeedback(db, hw.ID, 92, "结构更清晰了"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err = GetHomeworkByID(db, hw.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score == nil || *got.Score != 92 || got.AIComment != "结构更清晰了" {
		t.Fatalf("expected score 92 with new comment, got %+v", got)
	}
}

func TestUpdateHomeworkScoreFeedbackNotFound(t *testing.T) {
	db := newTestDB(t)

	if _, err := UpdateHomeworkScoreFeedback(db, 9999, 50, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateHomeworkScoreOutOfRange(t *testing.T) {
	db := newTestDB(t)

	if _, err := UpdateHomeworkScoreFeedback(db, 1, 100.5, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestListHomeworksByStudentNewestFirst(t *testing.T) {
	db := newTestDB(t)

	titles := []string{"第一周", "第二周", "第三周"}
	for i, title := range titles {
		at := time.Now().Add(time.Duration(i-len(titles)) * time.Hour)
		hw, err := CreateHomework(db, CreateHomeworkInput{StudentID: 5, Title: title, Status: "待完成"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Force distinct created_at values so the ordering is deterministic.
		if err := db.Model(hw).Update("created_at", at).Error; err != nil {
			t.Fatalf("backdate: %v", err)
		}
	}

	list, err := ListHomeworksByStudent(db, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 homeworks, got %d", len(list))
	}
	if list[0].Title != "第三周" || list[2].Title != "第一周" {
		t.Fatalf("expected newest-first ordering, got %q .. %q", list[0].Title, list[2].Title)
	}
}

func TestListHomeworksByStudentEmpty(t *testing.T) {
	db := newTestDB(t)

	list, err := ListHomeworksByStudent(db, 77)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}
