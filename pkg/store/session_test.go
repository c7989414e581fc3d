package store

import (
	"testing"

	"lecturelama-be/internal/entity"
)

func TestTranscriptAppendOrder(t *testing.T) {
	s := NewSession("s1", "alice")

	s.Append(entity.Turn{Role: entity.TurnRoleUser, Text: "q1"})
	s.Append(
		entity.Turn{Role: entity.TurnRoleUser, Text: "q2"},
		entity.Turn{Role: entity.TurnRoleTutor, Text: "a2"},
	)

	turns := s.All()
	if len(turns) != 3 {
		t.Fatalf("want 3 turns, got %d", len(turns))
	}
	wantTexts := []string{"q1", "q2", "a2"}
	for i, want := range wantTexts {
		if turns[i].Text != want {
			t.Errorf("turn %d: want %q, got %q", i, want, turns[i].Text)
		}
	}
}

func TestTranscriptAllReturnsSnapshot(t *testing.T) {
	s := NewSession("s1", "alice")
	s.Append(entity.Turn{Role: entity.TurnRoleUser, Text: "q"})

	snapshot := s.All()
	s.Append(entity.Turn{Role: entity.TurnRoleTutor, Text: "a"})

	if len(snapshot) != 1 {
		t.Errorf("snapshot mutated: want 1 turn, got %d", len(snapshot))
	}
}

func TestClearTranscript(t *testing.T) {
	s := NewSession("s1", "alice")
	s.Append(
		entity.Turn{Role: entity.TurnRoleUser, Text: "q"},
		entity.Turn{Role: entity.TurnRoleTutor, Text: "a"},
	)

	s.ClearTranscript()

	if got := s.TranscriptLen(); got != 0 {
		t.Errorf("want empty transcript after clear, got %d turns", got)
	}
}

func TestBusyGate(t *testing.T) {
	s := NewSession("s1", "alice")

	if !s.Begin() {
		t.Fatal("first Begin should succeed")
	}
	if s.Begin() {
		t.Error("second Begin should fail while busy")
	}
	s.End()
	if !s.Begin() {
		t.Error("Begin should succeed again after End")
	}
}
