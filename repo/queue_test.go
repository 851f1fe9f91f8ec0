package repo

import (
	"testing"

	"cpduel/model"
)

func TestQueueDeleteByIDExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewQueueRepo(db)
	entry := model.QueueEntry{
		UserID:          7,
		RatingMin:       800,
		RatingMax:       1200,
		DurationSeconds: 1800,
	}
	if err := repo.Create(&entry); err != nil {
		t.Fatalf("create: %v", err)
	}

	affected, err := repo.DeleteByID(entry.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if affected != 1 {
		t.Fatalf("delete affected %d rows, want 1", affected)
	}

	affected, err = repo.DeleteByID(entry.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if affected != 0 {
		t.Errorf("second delete affected %d rows, want 0", affected)
	}
}
