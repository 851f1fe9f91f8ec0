package logic

import (
	"testing"

	"cpduel/model"
)

func TestDecide1v1Winner(t *testing.T) {
	base := model.Match{Player1ID: 1, Player2ID: 2}
	tests := []struct {
		name   string
		modify func(m *model.Match)
		want   int64
	}{
		{"no solves is draw", func(m *model.Match) {}, 0},
		{"only player1 solved", func(m *model.Match) { m.Player1SolvedAt = 100 }, 1},
		{"only player2 solved", func(m *model.Match) { m.Player2SolvedAt = 100 }, 2},
		{"player1 solved earlier", func(m *model.Match) { m.Player1SolvedAt = 100; m.Player2SolvedAt = 200 }, 1},
		{"player2 solved earlier", func(m *model.Match) { m.Player1SolvedAt = 300; m.Player2SolvedAt = 200 }, 2},
		{"same second is draw", func(m *model.Match) { m.Player1SolvedAt = 100; m.Player2SolvedAt = 100 }, 0},
		{"player1 resigned", func(m *model.Match) { m.ResignedBy = 1 }, 2},
		{"player2 resigned despite solving first", func(m *model.Match) { m.Player2SolvedAt = 100; m.ResignedBy = 2 }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := base
			tt.modify(&match)
			if got := decide1v1Winner(match); got != tt.want {
				t.Errorf("decide1v1Winner = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreAgainstWinner(t *testing.T) {
	if got := scoreAgainstWinner(1, 1); got != ScoreWin {
		t.Errorf("winner score = %v, want %v", got, ScoreWin)
	}
	if got := scoreAgainstWinner(2, 1); got != ScoreLoss {
		t.Errorf("loser score = %v, want %v", got, ScoreLoss)
	}
	if got := scoreAgainstWinner(1, 0); got != ScoreDraw {
		t.Errorf("draw score = %v, want %v", got, ScoreDraw)
	}
}

func TestRankStandings(t *testing.T) {
	players := []model.MatchPlayer{
		{PlayerID: 1, SolvedCount: 1},
		{PlayerID: 2, SolvedCount: 2},
		{PlayerID: 3, SolvedCount: 2},
		{PlayerID: 4, SolvedCount: 0},
	}
	submissions := []model.MatchSubmission{
		{PlayerID: 1, SolvedAt: 50},
		{PlayerID: 2, SolvedAt: 100},
		{PlayerID: 2, SolvedAt: 300},
		{PlayerID: 3, SolvedAt: 100},
		{PlayerID: 3, SolvedAt: 200},
	}
	standings := rankStandings(players, submissions, 0)
	order := []int64{3, 2, 1, 4}
	for i, want := range order {
		if standings[i].PlayerID != want {
			t.Fatalf("standing %d = player %d, want %d", i, standings[i].PlayerID, want)
		}
	}
}

func TestRankStandingsResignerLast(t *testing.T) {
	players := []model.MatchPlayer{
		{PlayerID: 1, SolvedCount: 3},
		{PlayerID: 2, SolvedCount: 0},
	}
	standings := rankStandings(players, nil, 1)
	if standings[0].PlayerID != 2 || standings[1].PlayerID != 1 {
		t.Errorf("resigner should rank last, got order %d then %d",
			standings[0].PlayerID, standings[1].PlayerID)
	}
}

func TestFfaScores(t *testing.T) {
	players := []model.MatchPlayer{
		{PlayerID: 1, SolvedCount: 2},
		{PlayerID: 2, SolvedCount: 1},
		{PlayerID: 3, SolvedCount: 0},
	}
	submissions := []model.MatchSubmission{
		{PlayerID: 1, SolvedAt: 100},
		{PlayerID: 1, SolvedAt: 200},
		{PlayerID: 2, SolvedAt: 150},
	}
	standings := rankStandings(players, submissions, 0)
	scores, winnerID := ffaScores(standings)
	if winnerID != 1 {
		t.Errorf("winner = %d, want 1", winnerID)
	}
	if scores[1] != ScoreWin {
		t.Errorf("top score = %v, want %v", scores[1], ScoreWin)
	}
	if scores[2] != ScoreDraw {
		t.Errorf("middle score = %v, want %v", scores[2], ScoreDraw)
	}
	if scores[3] != ScoreLoss {
		t.Errorf("bottom score = %v, want %v", scores[3], ScoreLoss)
	}
}

func TestFfaScoresAllTied(t *testing.T) {
	players := []model.MatchPlayer{
		{PlayerID: 1},
		{PlayerID: 2},
		{PlayerID: 3},
	}
	standings := rankStandings(players, nil, 0)
	scores, winnerID := ffaScores(standings)
	if winnerID != 0 {
		t.Errorf("tied field produced winner %d, want 0", winnerID)
	}
	for id, score := range scores {
		if score != ScoreDraw {
			t.Errorf("player %d score = %v, want %v", id, score, ScoreDraw)
		}
	}
}

func TestTeamScores(t *testing.T) {
	players := []model.MatchPlayer{
		{PlayerID: 1, Team: 1, SolvedCount: 2},
		{PlayerID: 2, Team: 1, SolvedCount: 1},
		{PlayerID: 3, Team: 2, SolvedCount: 1},
		{PlayerID: 4, Team: 2, SolvedCount: 0},
	}
	standings := rankStandings(players, nil, 0)
	scores := teamScores(players, standings)
	for _, id := range []int64{1, 2} {
		if scores[id] != ScoreWin {
			t.Errorf("winning team player %d score = %v, want %v", id, scores[id], ScoreWin)
		}
	}
	for _, id := range []int64{3, 4} {
		if scores[id] != ScoreLoss {
			t.Errorf("losing team player %d score = %v, want %v", id, scores[id], ScoreLoss)
		}
	}
}

func TestTeamScoresResign(t *testing.T) {
	players := []model.MatchPlayer{
		{PlayerID: 1, Team: 1, SolvedCount: 0},
		{PlayerID: 2, Team: 2, SolvedCount: 3},
	}
	standings := rankStandings(players, nil, 2)
	scores := teamScores(players, standings)
	if scores[1] != ScoreWin || scores[2] != ScoreLoss {
		t.Errorf("resigning team should lose: scores = %v", scores)
	}
}

func TestAllSolved(t *testing.T) {
	players := []model.MatchPlayer{
		{PlayerID: 1, SolvedCount: 2},
		{PlayerID: 2, SolvedCount: 2},
	}
	if !allSolved(players, 2) {
		t.Errorf("allSolved should be true when everyone finished")
	}
	players[1].SolvedCount = 1
	if allSolved(players, 2) {
		t.Errorf("allSolved should be false with an unfinished player")
	}
	if allSolved(players, 0) {
		t.Errorf("allSolved should be false with zero problems")
	}
	if allSolved(players[:1], 1) {
		t.Errorf("allSolved should be false with a single player")
	}
}

func TestComputeScoresForcedDraw(t *testing.T) {
	mgr := &MatchManager{policy: FixedK{Factor: 32}}
	match := model.Match{LobbyMode: model.LobbyMode1v1, Player1ID: 1, Player2ID: 2, Player1SolvedAt: 100}
	players := []model.MatchPlayer{{PlayerID: 1}, {PlayerID: 2}}
	scores, winnerID := mgr.computeScores(match, players, nil, true)
	if winnerID != 0 {
		t.Errorf("forced draw winner = %d, want 0", winnerID)
	}
	if scores[1] != ScoreDraw || scores[2] != ScoreDraw {
		t.Errorf("forced draw scores = %v, want all 0.5", scores)
	}
}

func TestComputeDeltas1v1ZeroSum(t *testing.T) {
	mgr := &MatchManager{policy: FixedK{Factor: 32}}
	match := model.Match{LobbyMode: model.LobbyMode1v1, Player1ID: 1, Player2ID: 2}
	players := []model.MatchPlayer{{PlayerID: 1}, {PlayerID: 2}}
	users := map[int64]model.User{
		1: {Rating: 1000},
		2: {Rating: 1200},
	}
	users[1] = withID(users[1], 1)
	users[2] = withID(users[2], 2)
	scores := map[int64]float64{1: ScoreWin, 2: ScoreLoss}
	deltas := mgr.computeDeltas(match, players, users, scores)
	if deltas[1]+deltas[2] != 0 {
		t.Errorf("1v1 deltas (%d, %d) not zero-sum", deltas[1], deltas[2])
	}
	if deltas[1] <= 16 {
		t.Errorf("underdog delta = %d, want more than 16", deltas[1])
	}
}

func TestComputeDeltasTeamSkipsTeammates(t *testing.T) {
	mgr := &MatchManager{policy: FixedK{Factor: 32}}
	match := model.Match{LobbyMode: model.LobbyModeTeam}
	players := []model.MatchPlayer{
		{PlayerID: 1, Team: 1},
		{PlayerID: 2, Team: 1},
		{PlayerID: 3, Team: 2},
		{PlayerID: 4, Team: 2},
	}
	users := map[int64]model.User{
		1: withID(model.User{Rating: 1000}, 1),
		2: withID(model.User{Rating: 1000}, 2),
		3: withID(model.User{Rating: 1000}, 3),
		4: withID(model.User{Rating: 1000}, 4),
	}
	scores := map[int64]float64{1: ScoreWin, 2: ScoreWin, 3: ScoreLoss, 4: ScoreLoss}
	deltas := mgr.computeDeltas(match, players, users, scores)
	if deltas[1] != 16 || deltas[2] != 16 {
		t.Errorf("winning team deltas = (%d, %d), want (16, 16)", deltas[1], deltas[2])
	}
	if deltas[3] != -16 || deltas[4] != -16 {
		t.Errorf("losing team deltas = (%d, %d), want (-16, -16)", deltas[3], deltas[4])
	}
}

func withID(user model.User, id int64) model.User {
	user.ID = id
	return user
}
