package logic

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cpduel/global"
	"cpduel/model"
	"cpduel/repo"
)

func newTestStore(t *testing.T) *gorm.DB {
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
	prev := global.DB
	global.DB = db
	t.Cleanup(func() { global.DB = prev })
	return db
}

func TestRecordSolveIdempotent(t *testing.T) {
	db := newTestStore(t)
	match := model.Match{
		Status:          model.MatchStatusActive,
		LobbyMode:       model.LobbyMode1v1,
		Player1ID:       1,
		Player2ID:       2,
		StartTime:       100,
		DurationSeconds: 1800,
		ProblemCount:    1,
	}
	if err := repo.NewMatchRepo(db).Create(&match); err != nil {
		t.Fatalf("create match: %v", err)
	}
	playerRepo := repo.NewMatchPlayerRepo(db)
	for _, playerID := range []int64{1, 2} {
		if err := playerRepo.Create(&model.MatchPlayer{
			MatchID:  match.ID,
			PlayerID: playerID,
			JoinedAt: 50,
		}); err != nil {
			t.Fatalf("create player %d: %v", playerID, err)
		}
	}

	mgr := &MatchManager{policy: FixedK{Factor: 32}}
	solve := JudgeSubmission{SubmissionID: 999, ProblemID: "1700A", Verdict: "OK", CreationTime: 200}

	created, err := mgr.recordSolve(context.Background(), &match, 1, 0, solve)
	if err != nil {
		t.Fatalf("first recordSolve: %v", err)
	}
	if !created {
		t.Fatalf("first recordSolve created = false, want true")
	}

	// 第二次poll看到同一提交，必须是空操作
	created, err = mgr.recordSolve(context.Background(), &match, 1, 0, solve)
	if err != nil {
		t.Fatalf("second recordSolve: %v", err)
	}
	if created {
		t.Errorf("second recordSolve created = true, want false")
	}

	player, err := playerRepo.Get(match.ID, 1)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if player.SolvedCount != 1 {
		t.Errorf("solved_count = %d after double poll, want 1", player.SolvedCount)
	}
	stored, err := repo.NewMatchRepo(db).GetByID(match.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if stored.Player1SolvedAt != 200 {
		t.Errorf("player1 solved_at = %d, want 200", stored.Player1SolvedAt)
	}
}
