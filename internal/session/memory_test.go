package session

import (
	"context"
	"testing"

	"github.com/harulab/AibouCheck/internal/models"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	sess, err := s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if sess != nil {
		t.Errorf("Get(absent) = %+v, want nil", sess)
	}

	if err := s.Set(ctx, &Session{
		UserID:  "u1",
		Mode:    ModeAskCondition,
		Answers: models.AnswerSet{PlayTime: "30分"},
	}); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	sess, err = s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if sess == nil {
		t.Fatal("Get returned nil after Set")
	}
	if sess.Mode != ModeAskCondition {
		t.Errorf("Mode = %s, want %s", sess.Mode, ModeAskCondition)
	}
	if sess.Answers.PlayTime != "30分" {
		t.Errorf("Answers.PlayTime = %q, want %q", sess.Answers.PlayTime, "30分")
	}
	if sess.UpdatedAt.IsZero() {
		t.Error("UpdatedAt was not stamped by Set")
	}

	// Mutating the returned session must not affect the stored copy.
	sess.Answers.PlayTime = "mutated"
	again, _ := s.Get(ctx, "u1")
	if again.Answers.PlayTime != "30分" {
		t.Error("stored session was mutated through a returned pointer")
	}

	if err := s.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	sess, _ = s.Get(ctx, "u1")
	if sess != nil {
		t.Errorf("Get after Delete = %+v, want nil", sess)
	}
}

func TestMemoryStoreDeleteAbsent(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Delete(context.Background(), "nobody"); err != nil {
		t.Errorf("Delete(absent) error: %v", err)
	}
}
