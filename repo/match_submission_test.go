package repo

import (
	"testing"

	"cpduel/model"
)

func TestSubmissionRecordIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewMatchSubmissionRepo(db)

	created, err := repo.Record(&model.MatchSubmission{
		MatchID:      10,
		PlayerID:     1,
		ProblemOrder: 0,
		SubmissionID: 111,
		SolvedAt:     100,
	})
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if !created {
		t.Fatalf("first record created = false, want true")
	}

	created, err = repo.Record(&model.MatchSubmission{
		MatchID:      10,
		PlayerID:     1,
		ProblemOrder: 0,
		SubmissionID: 222,
		SolvedAt:     300,
	})
	if err != nil {
		t.Fatalf("duplicate record: %v", err)
	}
	if created {
		t.Errorf("duplicate record created = true, want false")
	}

	rows, err := repo.ListByMatchPlayer(10, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].SubmissionID != 111 || rows[0].SolvedAt != 100 {
		t.Errorf("original solve overwritten: %+v", rows[0])
	}
}
