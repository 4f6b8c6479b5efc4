package repositories_test

import (
	"context"
	"testing"

	"codeclimb/internal/repositories"
)

func TestRemoveProblemsEmptyListIsNoOp(t *testing.T) {
	// A nil handle proves the empty list short-circuits before any query;
	// touching the database here would panic.
	repo := repositories.NewPlaylistRepository(nil)

	removed, err := repo.RemoveProblems(context.Background(), "user-1", "playlist-1", nil)
	if err != nil {
		t.Fatalf("RemoveProblems(empty) failed: %v", err)
	}
	if removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}

	removed, err = repo.RemoveProblems(context.Background(), "user-1", "playlist-1", []string{})
	if err != nil || removed != 0 {
		t.Fatalf("RemoveProblems(empty slice) = (%d, %v), want (0, nil)", removed, err)
	}
}
