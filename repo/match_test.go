package repo

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cpduel/global"
	"cpduel/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if global.Node == nil {
		node, err := snowflake.NewNode(1)
		if err != nil {
			t.Fatalf("snowflake node: %v", err)
		}
		global.Node = node
	}
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.MigrateTables(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestMatchFinishExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewMatchRepo(db)
	match := model.Match{
		Status:          model.MatchStatusActive,
		LobbyMode:       model.LobbyMode1v1,
		Player1ID:       1,
		Player2ID:       2,
		DurationSeconds: 1800,
	}
	if err := repo.Create(&match); err != nil {
		t.Fatalf("create: %v", err)
	}

	affected, err := repo.Finish(match.ID, map[string]interface{}{
		"winner_id": int64(1),
		"end_time":  int64(500),
	})
	if err != nil {
		t.Fatalf("first finish: %v", err)
	}
	if affected != 1 {
		t.Fatalf("first finish affected %d rows, want 1", affected)
	}

	affected, err = repo.Finish(match.ID, map[string]interface{}{
		"winner_id": int64(2),
		"end_time":  int64(900),
	})
	if err != nil {
		t.Fatalf("second finish: %v", err)
	}
	if affected != 0 {
		t.Errorf("second finish affected %d rows, want 0", affected)
	}

	got, err := repo.GetByID(match.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.MatchStatusFinished {
		t.Errorf("status = %d, want finished", got.Status)
	}
	if got.WinnerID != 1 || got.EndTime != 500 {
		t.Errorf("settlement overwritten: winner=%d end=%d, want winner=1 end=500", got.WinnerID, got.EndTime)
	}
}

func TestMatchStartOnlyFromWaiting(t *testing.T) {
	db := newTestDB(t)
	repo := NewMatchRepo(db)
	match := model.Match{
		Status:          model.MatchStatusWaiting,
		LobbyMode:       model.LobbyModeFFA,
		Player1ID:       1,
		DurationSeconds: 1800,
		MaxPlayers:      4,
	}
	if err := repo.Create(&match); err != nil {
		t.Fatalf("create: %v", err)
	}

	affected, err := repo.Start(match.ID, 1000)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if affected != 1 {
		t.Fatalf("start affected %d rows, want 1", affected)
	}

	affected, err = repo.Start(match.ID, 2000)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if affected != 0 {
		t.Errorf("starting an active match affected %d rows, want 0", affected)
	}
	got, _ := repo.GetByID(match.ID)
	if got.StartTime != 1000 {
		t.Errorf("start time overwritten to %d, want 1000", got.StartTime)
	}

	if _, err := repo.Finish(match.ID, map[string]interface{}{"end_time": int64(1)}); err != nil {
		t.Fatalf("finish: %v", err)
	}
	affected, err = repo.Start(match.ID, 3000)
	if err != nil {
		t.Fatalf("start after finish: %v", err)
	}
	if affected != 0 {
		t.Errorf("finished match left finished state: start affected %d rows, want 0", affected)
	}
}

func TestSetPlayerSolvedOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewMatchRepo(db)
	match := model.Match{
		Status:          model.MatchStatusActive,
		LobbyMode:       model.LobbyMode1v1,
		Player1ID:       1,
		Player2ID:       2,
		DurationSeconds: 1800,
	}
	if err := repo.Create(&match); err != nil {
		t.Fatalf("create: %v", err)
	}

	affected, err := repo.SetPlayerSolved(match.ID, 1, 100)
	if err != nil {
		t.Fatalf("first solve: %v", err)
	}
	if affected != 1 {
		t.Fatalf("first solve affected %d rows, want 1", affected)
	}

	affected, err = repo.SetPlayerSolved(match.ID, 1, 200)
	if err != nil {
		t.Fatalf("second solve: %v", err)
	}
	if affected != 0 {
		t.Errorf("second solve affected %d rows, want 0", affected)
	}
	got, _ := repo.GetByID(match.ID)
	if got.Player1SolvedAt != 100 {
		t.Errorf("solved_at overwritten to %d, want 100", got.Player1SolvedAt)
	}
}
