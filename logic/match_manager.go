package logic

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"cpduel/global"
	"cpduel/log/zlog"
	"cpduel/model"
	"cpduel/repo"
	"cpduel/response"
	"cpduel/types"
)

const (
	pollPassTimeout = 10 * time.Second

	PollEventSolve    = "solve"
	PollEventFinished = "finished"
)

// 结算原因
const (
	finishReasonExpired   = "expired"
	finishReasonAllSolved = "all_solved"
	finishReasonResign    = "resign"
	finishReasonDraw      = "draw_agreed"
)

// MatchManager 对局状态机。poll推进过题检测与到点结算；
// 结算全部走一个事务，对局行的条件更新兜底幂等
type MatchManager struct {
	policy RatingPolicy
}

var matchManagerOnce sync.Once
var matchManager *MatchManager

func GetMatchManager() *MatchManager {
	matchManagerOnce.Do(func() {
		matchManager = &MatchManager{policy: FixedK{Factor: DefaultKFactor}}
	})
	return matchManager
}

func (mgr *MatchManager) SetPolicy(policy RatingPolicy) {
	if policy != nil {
		mgr.policy = policy
	}
}

// PollPass 一次poll：所有活跃对局并发各自推进，单局失败不影响其他对局
func (mgr *MatchManager) PollPass(ctx context.Context) ([]types.PollResult, error) {
	matches, err := repo.NewMatchRepo(global.DB).ListByStatus(model.MatchStatusActive)
	if err != nil {
		return nil, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	passCtx, cancel := context.WithTimeout(ctx, pollPassTimeout)
	defer cancel()

	var mu sync.Mutex
	var results []types.PollResult
	var wg sync.WaitGroup
	for _, match := range matches {
		wg.Add(1)
		go func(match model.Match) {
			defer wg.Done()
			matchResults, err := mgr.pollMatch(passCtx, match)
			if err != nil {
				zlog.CtxWarnf(passCtx, "poll对局失败 match=%d:%v", match.ID, err)
			}
			if len(matchResults) > 0 {
				mu.Lock()
				results = append(results, matchResults...)
				mu.Unlock()
			}
		}(match)
	}
	wg.Wait()
	return results, nil
}

// pollMatch 推进单个对局：检测过题、到点或全员过题则结算
func (mgr *MatchManager) pollMatch(ctx context.Context, match model.Match) ([]types.PollResult, error) {
	var results []types.PollResult
	now := time.Now().Unix()

	players, err := repo.NewMatchPlayerRepo(global.DB).ListByMatch(match.ID)
	if err != nil {
		return nil, err
	}
	problems, err := repo.NewMatchProblemRepo(global.DB).ListByMatch(match.ID)
	if err != nil {
		return nil, err
	}

	if match.StartTime > 0 && now <= match.Deadline() {
		solveResults := mgr.detectSolves(ctx, &match, players, problems, now)
		results = append(results, solveResults...)
		// detectSolves 更新了本地副本，重读一次计数
		players, err = repo.NewMatchPlayerRepo(global.DB).ListByMatch(match.ID)
		if err != nil {
			return results, err
		}
	}

	switch {
	case match.StartTime > 0 && now > match.Deadline():
		finished, result, err := mgr.Finalize(ctx, match, finishReasonExpired, false)
		if err != nil {
			return results, err
		}
		if finished {
			results = append(results, result)
		}
	case allSolved(players, len(problems)):
		finished, result, err := mgr.Finalize(ctx, match, finishReasonAllSolved, false)
		if err != nil {
			return results, err
		}
		if finished {
			results = append(results, result)
		}
	}
	return results, nil
}

// detectSolves 逐个参与者核对缓存的评测提交。单人失败只记日志跳过
func (mgr *MatchManager) detectSolves(ctx context.Context, match *model.Match, players []model.MatchPlayer, problems []model.MatchProblem, now int64) []types.PollResult {
	var results []types.PollResult
	queue := GetJudgeQueue()
	subRepo := repo.NewMatchSubmissionRepo(global.DB)
	for _, player := range players {
		queue.Enqueue(player.PlayerID)
		submissions := queue.GetUserSubmissions(player.PlayerID)
		if len(submissions) == 0 {
			continue
		}
		recorded, err := subRepo.ListByMatchPlayer(match.ID, player.PlayerID)
		if err != nil {
			zlog.CtxWarnf(ctx, "读取过题记录失败 match=%d player=%d:%v", match.ID, player.PlayerID, err)
			continue
		}
		solvedOrders := make(map[int]struct{}, len(recorded))
		for _, r := range recorded {
			solvedOrders[r.ProblemOrder] = struct{}{}
		}
		for _, problem := range problems {
			if _, ok := solvedOrders[problem.Order]; ok {
				continue
			}
			solve, ok := firstQualifying(submissions, problem.ProblemID, match.StartTime)
			if !ok {
				continue
			}
			created, err := mgr.recordSolve(ctx, match, player.PlayerID, problem.Order, solve)
			if err != nil {
				zlog.CtxWarnf(ctx, "写入过题失败 match=%d player=%d:%v", match.ID, player.PlayerID, err)
				continue
			}
			if !created {
				continue
			}
			results = append(results, types.PollResult{
				MatchID:      match.ID,
				Event:        PollEventSolve,
				PlayerID:     player.PlayerID,
				ProblemOrder: problem.Order,
			})
			GetWsHub().SendToMatch(match.ID, types.WsResponse{
				Type:    "match_update",
				Code:    response.SUCCESS.Code,
				Message: response.SUCCESS.Msg,
				Data: map[string]interface{}{
					"match_id":      match.ID,
					"player_id":     player.PlayerID,
					"problem_order": problem.Order,
					"solved_at":     solve.CreationTime,
				},
			})
		}
	}
	return results
}

// firstQualifying 该题最早的合法AC
func firstQualifying(submissions []JudgeSubmission, problemID string, startTime int64) (JudgeSubmission, bool) {
	var best JudgeSubmission
	found := false
	for _, s := range submissions {
		if isPendingVerdict(s.Verdict) {
			continue
		}
		if !s.QualifiesFor(problemID, startTime) {
			continue
		}
		if !found || s.CreationTime < best.CreationTime {
			best = s
			found = true
		}
	}
	return best, found
}

// recordSolve 过题落盘：凭证行唯一键 + solved_at只写一次，双保险幂等
func (mgr *MatchManager) recordSolve(ctx context.Context, match *model.Match, playerID int64, order int, solve JudgeSubmission) (bool, error) {
	created := false
	err := global.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := repo.NewMatchSubmissionRepo(tx).Record(&model.MatchSubmission{
			MatchID:      match.ID,
			PlayerID:     playerID,
			ProblemOrder: order,
			SubmissionID: solve.SubmissionID,
			SolvedAt:     solve.CreationTime,
		})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		created = true
		if err := repo.NewMatchPlayerRepo(tx).IncrementSolved(match.ID, playerID); err != nil {
			return err
		}
		if match.IsClassic1v1() {
			slot := 0
			switch playerID {
			case match.Player1ID:
				slot = 1
			case match.Player2ID:
				slot = 2
			}
			if slot != 0 {
				if _, err := repo.NewMatchRepo(tx).SetPlayerSolved(match.ID, slot, solve.CreationTime); err != nil {
					return err
				}
				if slot == 1 && match.Player1SolvedAt == 0 {
					match.Player1SolvedAt = solve.CreationTime
				}
				if slot == 2 && match.Player2SolvedAt == 0 {
					match.Player2SolvedAt = solve.CreationTime
				}
			}
		}
		return nil
	})
	return created, err
}

func allSolved(players []model.MatchPlayer, problemCount int) bool {
	if problemCount == 0 || len(players) < 2 {
		return false
	}
	for _, p := range players {
		if p.SolvedCount < problemCount {
			return false
		}
	}
	return true
}

// DrawOffer 求和开关：第一个记录发起者，第二个不同参与者同意即平局结算
func (mgr *MatchManager) DrawOffer(ctx context.Context, userID int64, matchID int64) (resp types.MatchActionResp, err error) {
	match, err := mgr.activeMatchForPlayer(matchID, userID)
	if err != nil {
		return resp, err
	}
	if match.DrawOfferedBy == 0 || match.DrawOfferedBy == userID {
		if err := repo.NewMatchRepo(global.DB).SetDrawOfferedBy(match.ID, userID); err != nil {
			return resp, response.ErrResp(err, response.DATABASE_ERROR)
		}
		match.DrawOfferedBy = userID
	} else {
		finished, _, err := mgr.Finalize(ctx, match, finishReasonDraw, true)
		if err != nil {
			return resp, err
		}
		if !finished {
			return resp, response.ErrResp(errors.New("match already finished"), response.MATCH_NOT_ACTIVE)
		}
		match, _ = repo.NewMatchRepo(global.DB).GetByID(match.ID)
	}
	info, err := BuildMatchInfo(match)
	if err != nil {
		return resp, err
	}
	resp.Match = info
	return resp, nil
}

// Resign 认输立即结算，对手/对方队伍获胜
func (mgr *MatchManager) Resign(ctx context.Context, userID int64, matchID int64) (resp types.MatchActionResp, err error) {
	match, err := mgr.activeMatchForPlayer(matchID, userID)
	if err != nil {
		return resp, err
	}
	match.ResignedBy = userID
	finished, _, err := mgr.Finalize(ctx, match, finishReasonResign, false)
	if err != nil {
		return resp, err
	}
	if !finished {
		return resp, response.ErrResp(errors.New("match already finished"), response.MATCH_NOT_ACTIVE)
	}
	match, _ = repo.NewMatchRepo(global.DB).GetByID(match.ID)
	info, err := BuildMatchInfo(match)
	if err != nil {
		return resp, err
	}
	resp.Match = info
	return resp, nil
}

func (mgr *MatchManager) activeMatchForPlayer(matchID, userID int64) (model.Match, error) {
	match, err := repo.NewMatchRepo(global.DB).GetByID(matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return match, response.ErrResp(err, response.MESSAGE_NOT_EXIST)
		}
		return match, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if match.Status != model.MatchStatusActive {
		return match, response.ErrResp(errors.New("match not active"), response.MATCH_NOT_ACTIVE)
	}
	if _, err := repo.NewMatchPlayerRepo(global.DB).Get(matchID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return match, response.ErrResp(err, response.NOT_MATCH_PARTICIPANT)
		}
		return match, response.ErrResp(err, response.DATABASE_ERROR)
	}
	return match, nil
}

// Finalize 结算唯一入口。对局行 status=active 的条件更新保证整套
// 写入（对局、参与者分变、玩家画像）至多发生一次
func (mgr *MatchManager) Finalize(ctx context.Context, match model.Match, reason string, forcedDraw bool) (bool, types.PollResult, error) {
	players, err := repo.NewMatchPlayerRepo(global.DB).ListByMatch(match.ID)
	if err != nil {
		return false, types.PollResult{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	submissions, err := repo.NewMatchSubmissionRepo(global.DB).ListByMatch(match.ID)
	if err != nil {
		return false, types.PollResult{}, response.ErrResp(err, response.DATABASE_ERROR)
	}

	finished := false
	var winnerID int64
	err = global.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepo := repo.NewUserRepo(tx)
		users := make(map[int64]model.User, len(players))
		for _, p := range players {
			user, err := userRepo.GetForUpdate(p.PlayerID)
			if err != nil {
				return err
			}
			users[p.PlayerID] = user
		}

		scores, winner := mgr.computeScores(match, players, submissions, forcedDraw)
		winnerID = winner
		deltas := mgr.computeDeltas(match, players, users, scores)

		now := time.Now().Unix()
		fields := map[string]interface{}{
			"winner_id": winnerID,
			"end_time":  now,
		}
		if match.ResignedBy != 0 {
			fields["resigned_by"] = match.ResignedBy
		}
		if match.IsClassic1v1() {
			fields["player1_rating_change"] = deltas[match.Player1ID]
			fields["player2_rating_change"] = deltas[match.Player2ID]
		}
		affected, err := repo.NewMatchRepo(tx).Finish(match.ID, fields)
		if err != nil {
			return err
		}
		if affected == 0 {
			// 已被并发结算过
			return nil
		}
		finished = true

		playerRepo := repo.NewMatchPlayerRepo(tx)
		for _, p := range players {
			if err := playerRepo.UpdateRatingChange(match.ID, p.PlayerID, deltas[p.PlayerID]); err != nil {
				return err
			}
			user := users[p.PlayerID]
			wins, losses, draws := user.Wins, user.Losses, user.Draws
			switch scores[p.PlayerID] {
			case ScoreWin:
				wins++
			case ScoreLoss:
				losses++
			default:
				draws++
			}
			rating := user.Rating + deltas[p.PlayerID]
			if err := userRepo.ApplyMatchResult(p.PlayerID, rating, wins, losses, draws, RankLabel(rating)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, types.PollResult{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if !finished {
		return false, types.PollResult{}, nil
	}

	zlog.CtxInfof(ctx, "对局结算 match=%d reason=%s winner=%d", match.ID, reason, winnerID)
	GetWsHub().SendToMatch(match.ID, types.WsResponse{
		Type:    "match_finish",
		Code:    response.SUCCESS.Code,
		Message: response.SUCCESS.Msg,
		Data: map[string]interface{}{
			"match_id":  match.ID,
			"winner_id": winnerID,
			"reason":    reason,
		},
	})
	return true, types.PollResult{
		MatchID:  match.ID,
		Event:    PollEventFinished,
		WinnerID: winnerID,
	}, nil
}

// computeScores 每人的结算得分(1/0.5/0)与胜者(0为平局)
func (mgr *MatchManager) computeScores(match model.Match, players []model.MatchPlayer, submissions []model.MatchSubmission, forcedDraw bool) (map[int64]float64, int64) {
	scores := make(map[int64]float64, len(players))
	if forcedDraw {
		for _, p := range players {
			scores[p.PlayerID] = ScoreDraw
		}
		return scores, 0
	}
	if match.IsClassic1v1() {
		winner := decide1v1Winner(match)
		scores[match.Player1ID] = scoreAgainstWinner(match.Player1ID, winner)
		scores[match.Player2ID] = scoreAgainstWinner(match.Player2ID, winner)
		return scores, winner
	}
	standings := rankStandings(players, submissions, match.ResignedBy)
	if match.LobbyMode == model.LobbyModeTeam {
		return teamScores(players, standings), 0
	}
	return ffaScores(standings)
}

// decide1v1Winner 1v1胜负：认输判负；都过题先过者胜；只有一人过题者胜；否则平局
func decide1v1Winner(match model.Match) int64 {
	switch match.ResignedBy {
	case match.Player1ID:
		return match.Player2ID
	case match.Player2ID:
		return match.Player1ID
	}
	p1, p2 := match.Player1SolvedAt, match.Player2SolvedAt
	switch {
	case p1 > 0 && p2 > 0:
		if p1 < p2 {
			return match.Player1ID
		}
		if p2 < p1 {
			return match.Player2ID
		}
		return 0
	case p1 > 0:
		return match.Player1ID
	case p2 > 0:
		return match.Player2ID
	default:
		return 0
	}
}

func scoreAgainstWinner(playerID, winnerID int64) float64 {
	if winnerID == 0 {
		return ScoreDraw
	}
	if playerID == winnerID {
		return ScoreWin
	}
	return ScoreLoss
}

// standing 多人模式排位依据
type standing struct {
	PlayerID    int64
	Team        int
	SolvedCount int
	LastSolved  int64
	Resigned    bool
}

// rankStandings 过题多者在前，同题数先完成者在前，认输者垫底
func rankStandings(players []model.MatchPlayer, submissions []model.MatchSubmission, resignedBy int64) []standing {
	lastSolve := make(map[int64]int64, len(players))
	for _, s := range submissions {
		if s.SolvedAt > lastSolve[s.PlayerID] {
			lastSolve[s.PlayerID] = s.SolvedAt
		}
	}
	standings := make([]standing, 0, len(players))
	for _, p := range players {
		standings = append(standings, standing{
			PlayerID:    p.PlayerID,
			Team:        p.Team,
			SolvedCount: p.SolvedCount,
			LastSolved:  lastSolve[p.PlayerID],
			Resigned:    p.PlayerID == resignedBy,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Resigned != b.Resigned {
			return !a.Resigned
		}
		if a.SolvedCount != b.SolvedCount {
			return a.SolvedCount > b.SolvedCount
		}
		if a.LastSolved != b.LastSolved {
			if a.LastSolved == 0 {
				return false
			}
			if b.LastSolved == 0 {
				return true
			}
			return a.LastSolved < b.LastSolved
		}
		return false
	})
	return standings
}

func sameStanding(a, b standing) bool {
	return a.Resigned == b.Resigned && a.SolvedCount == b.SolvedCount && a.LastSolved == b.LastSolved
}

// ffaScores 个人混战：互相比较的平均得分，唯一第一名记为胜者
func ffaScores(standings []standing) (map[int64]float64, int64) {
	scores := make(map[int64]float64, len(standings))
	for _, p := range standings {
		total := 0.0
		for _, q := range standings {
			if p.PlayerID == q.PlayerID {
				continue
			}
			total += pairScore(p, q, standings)
		}
		scores[p.PlayerID] = total / float64(len(standings)-1)
	}
	var winnerID int64
	if len(standings) > 1 && !sameStanding(standings[0], standings[1]) && !standings[0].Resigned {
		winnerID = standings[0].PlayerID
	}
	return scores, winnerID
}

// teamScores 队伍按总过题数定胜负，全队共享得分
func teamScores(players []model.MatchPlayer, standings []standing) map[int64]float64 {
	teamSolved := make(map[int]int)
	teamResigned := make(map[int]bool)
	for _, s := range standings {
		teamSolved[s.Team] += s.SolvedCount
		if s.Resigned {
			teamResigned[s.Team] = true
		}
	}
	scores := make(map[int64]float64, len(players))
	for _, p := range players {
		total, count := 0.0, 0
		for team, solved := range teamSolved {
			if team == p.Team {
				continue
			}
			count++
			switch {
			case teamResigned[p.Team] && !teamResigned[team]:
				total += ScoreLoss
			case teamResigned[team] && !teamResigned[p.Team]:
				total += ScoreWin
			case teamSolved[p.Team] > solved:
				total += ScoreWin
			case teamSolved[p.Team] < solved:
				total += ScoreLoss
			default:
				total += ScoreDraw
			}
		}
		if count == 0 {
			scores[p.PlayerID] = ScoreDraw
			continue
		}
		scores[p.PlayerID] = total / float64(count)
	}
	return scores
}

// pairScore p相对q的单场得分
func pairScore(p, q standing, standings []standing) float64 {
	pi, qi := standingIndex(standings, p.PlayerID), standingIndex(standings, q.PlayerID)
	if sameStanding(p, q) {
		return ScoreDraw
	}
	if pi < qi {
		return ScoreWin
	}
	return ScoreLoss
}

func standingIndex(standings []standing, playerID int64) int {
	for i, s := range standings {
		if s.PlayerID == playerID {
			return i
		}
	}
	return len(standings)
}

// computeDeltas 1v1走经典零和；多人模式对每个对手逐一Elo后取平均
func (mgr *MatchManager) computeDeltas(match model.Match, players []model.MatchPlayer, users map[int64]model.User, scores map[int64]float64) map[int64]int {
	deltas := make(map[int64]int, len(players))
	if match.IsClassic1v1() {
		u1, u2 := users[match.Player1ID], users[match.Player2ID]
		k1 := mgr.policy.K(u1.GamesPlayed())
		k2 := mgr.policy.K(u2.GamesPlayed())
		if k1 == k2 {
			d1, d2 := Elo(u1.Rating, u2.Rating, scores[match.Player1ID], k1)
			deltas[match.Player1ID], deltas[match.Player2ID] = d1, d2
			return deltas
		}
		deltas[match.Player1ID] = int(math.Round(EloDelta(u1.Rating, u2.Rating, scores[match.Player1ID], k1)))
		deltas[match.Player2ID] = int(math.Round(EloDelta(u2.Rating, u1.Rating, scores[match.Player2ID], k2)))
		return deltas
	}
	teams := make(map[int64]int, len(players))
	for _, p := range players {
		teams[p.PlayerID] = p.Team
	}
	for _, p := range players {
		user := users[p.PlayerID]
		k := mgr.policy.K(user.GamesPlayed())
		total, count := 0.0, 0
		for _, q := range players {
			if q.PlayerID == p.PlayerID {
				continue
			}
			if match.LobbyMode == model.LobbyModeTeam && teams[q.PlayerID] == teams[p.PlayerID] {
				continue
			}
			total += EloDelta(user.Rating, users[q.PlayerID].Rating, scores[p.PlayerID], k)
			count++
		}
		if count == 0 {
			deltas[p.PlayerID] = 0
			continue
		}
		deltas[p.PlayerID] = int(math.Round(total / float64(count)))
	}
	return deltas
}
