package repository

import (
	"errors"
	"testing"
)

func TestCreateUserAndGetByUsername(t *testing.T) {
	db := newTestDB(t)

	created, err := CreateUser(db, CreateUserInput{
		Username:     "t_zhang",
		PasswordHash: "hash",
		Role:         "teacher",
		DisplayName:  "张老师",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected server-assigned created_at")
	}

	got, err := GetUserByUsername(db, "t_zhang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != created.ID || got.DisplayName != "张老师" {
		t.Fatalf("got wrong user: %+v", got)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := newTestDB(t)

	in := CreateUserInput{Username: "t_zhang", PasswordHash: "hash", Role: "teacher", DisplayName: "张老师"}
	if _, err := CreateUser(db, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := CreateUser(db, in)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateUserInvalidRole(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateUser(db, CreateUserInput{Username: "x", PasswordHash: "h", Role: "admin", DisplayName: "X"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := GetUserByUsername(db, "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
