package logic

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cpduel/global"
	"cpduel/log/zlog"
	"cpduel/model"
	"cpduel/repo"
	"cpduel/response"
	"cpduel/types"
)

const (
	lobbyMaxPlayers  = 8
	lobbyMaxProblems = 10
)

// LobbyLogic 自建房间：建房时即选题，满员自动开局，房主可提前开局
type LobbyLogic struct {
	selector *ProblemSelector
}

func NewLobbyLogic(selector *ProblemSelector) *LobbyLogic {
	return &LobbyLogic{selector: selector}
}

// Create 建房。题目在建房时选定，开局后不再变化
func (l *LobbyLogic) Create(ctx context.Context, userID int64, req types.MatchCreateReq) (resp types.MatchCreateResp, err error) {
	mode, maxPlayers, teamSize, problemCount, err := normalizeLobbyReq(req)
	if err != nil {
		return resp, err
	}
	if req.RatingMin < 0 || req.RatingMax < req.RatingMin || req.DurationSeconds <= 0 {
		return resp, response.ErrResp(errors.New("band invalid"), response.PARAM_NOT_VALID)
	}
	user, err := repo.NewUserRepo(global.DB).GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if user.JudgeHandle == "" {
		return resp, response.ErrResp(errors.New("judge handle blank"), response.PARAM_NOT_VALID)
	}

	blacklist, err := repo.NewMatchProblemRepo(global.DB).ListProblemIDsByPlayers([]int64{userID})
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	band := Band{Min: req.RatingMin, Max: req.RatingMax}
	problems, err := l.selector.Pick(ctx, band, req.Tags, blacklist, problemCount)
	if err != nil {
		return resp, err
	}

	now := time.Now().Unix()
	match := model.Match{
		Status:          model.MatchStatusWaiting,
		LobbyMode:       mode,
		Player1ID:       userID,
		DurationSeconds: req.DurationSeconds,
		MaxPlayers:      maxPlayers,
		TeamSize:        teamSize,
		ProblemCount:    problemCount,
		ChallengeCode:   newChallengeCode(),
	}
	err = global.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.NewMatchRepo(tx).Create(&match); err != nil {
			return err
		}
		if err := repo.NewMatchPlayerRepo(tx).Create(&model.MatchPlayer{
			MatchID:  match.ID,
			PlayerID: userID,
			Team:     1,
			JoinedAt: now,
		}); err != nil {
			return err
		}
		rows := make([]model.MatchProblem, 0, len(problems))
		for i, p := range problems {
			rows = append(rows, model.MatchProblem{
				MatchID:   match.ID,
				Order:     i,
				ProblemID: p.ID,
				Rating:    p.Difficulty,
			})
		}
		return repo.NewMatchProblemRepo(tx).CreateBatch(rows)
	})
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	zlog.CtxInfof(ctx, "建房成功 match=%d mode=%s creator=%d", match.ID, mode, userID)
	info, err := BuildMatchInfo(match)
	if err != nil {
		return resp, err
	}
	resp.Match = info
	return resp, nil
}

// Join 按对局ID或邀请码入房，满员自动开局
func (l *LobbyLogic) Join(ctx context.Context, userID int64, req types.MatchJoinReq) (resp types.MatchJoinResp, err error) {
	match, err := l.resolveMatch(req.MatchID, req.ChallengeCode)
	if err != nil {
		return resp, err
	}
	if match.Status != model.MatchStatusWaiting {
		return resp, response.ErrResp(errors.New("match not waiting"), response.MATCH_NOT_ACTIVE)
	}
	user, err := repo.NewUserRepo(global.DB).GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if user.JudgeHandle == "" {
		return resp, response.ErrResp(errors.New("judge handle blank"), response.PARAM_NOT_VALID)
	}

	playerRepo := repo.NewMatchPlayerRepo(global.DB)
	players, err := playerRepo.ListByMatch(match.ID)
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	for _, p := range players {
		if p.PlayerID == userID {
			return resp, response.ErrResp(errors.New("already joined"), response.ALREADY_IN_QUEUE)
		}
	}
	if len(players) >= match.MaxPlayers {
		return resp, response.ErrResp(errors.New("match full"), response.MATCH_FULL)
	}
	team, err := pickTeam(match, players, req.Team)
	if err != nil {
		return resp, err
	}

	now := time.Now().Unix()
	// 唯一索引兜底并发重复入房
	if err := playerRepo.Create(&model.MatchPlayer{
		MatchID:  match.ID,
		PlayerID: userID,
		Team:     team,
		JoinedAt: now,
	}); err != nil {
		return resp, response.ErrResp(err, response.ALREADY_IN_QUEUE)
	}
	if match.IsClassic1v1() && match.Player2ID == 0 {
		if err := repo.NewMatchRepo(global.DB).SetPlayer2(match.ID, userID); err != nil {
			return resp, response.ErrResp(err, response.DATABASE_ERROR)
		}
		match.Player2ID = userID
	}
	if len(players)+1 >= match.MaxPlayers {
		if err := l.start(ctx, &match); err != nil {
			return resp, err
		}
	}
	info, err := BuildMatchInfo(match)
	if err != nil {
		return resp, err
	}
	resp.Match = info
	return resp, nil
}

// Leave 开局前退房，房间空了直接关闭
func (l *LobbyLogic) Leave(ctx context.Context, userID int64, req types.MatchLeaveReq) (resp types.MatchActionResp, err error) {
	match, err := l.resolveMatch(req.MatchID, "")
	if err != nil {
		return resp, err
	}
	if match.Status != model.MatchStatusWaiting {
		return resp, response.ErrResp(errors.New("match not waiting"), response.MATCH_NOT_ACTIVE)
	}
	playerRepo := repo.NewMatchPlayerRepo(global.DB)
	removed, err := playerRepo.Delete(match.ID, userID)
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if removed == 0 {
		return resp, response.ErrResp(errors.New("not a participant"), response.NOT_MATCH_PARTICIPANT)
	}
	count, err := playerRepo.CountByMatch(match.ID)
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if count == 0 {
		if err := repo.NewMatchRepo(global.DB).Cancel(match.ID); err != nil {
			return resp, response.ErrResp(err, response.DATABASE_ERROR)
		}
		zlog.CtxInfof(ctx, "空房关闭 match=%d", match.ID)
	}
	match, err = repo.NewMatchRepo(global.DB).GetByID(match.ID)
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	info, err := BuildMatchInfo(match)
	if err != nil {
		return resp, err
	}
	resp.Match = info
	return resp, nil
}

// Start 房主提前开局，至少两人且team模式两队都有人
func (l *LobbyLogic) Start(ctx context.Context, userID int64, req types.MatchStartReq) (resp types.MatchActionResp, err error) {
	match, err := l.resolveMatch(req.MatchID, "")
	if err != nil {
		return resp, err
	}
	if match.Player1ID != userID {
		return resp, response.ErrResp(errors.New("not lobby owner"), response.PERMISSION_DENIED)
	}
	if match.Status != model.MatchStatusWaiting {
		return resp, response.ErrResp(errors.New("match not waiting"), response.MATCH_NOT_ACTIVE)
	}
	players, err := repo.NewMatchPlayerRepo(global.DB).ListByMatch(match.ID)
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if len(players) < 2 {
		return resp, response.ErrResp(errors.New("not enough players"), response.PARAM_NOT_VALID)
	}
	if match.LobbyMode == model.LobbyModeTeam && !bothTeamsPresent(players) {
		return resp, response.ErrResp(errors.New("team empty"), response.PARAM_NOT_VALID)
	}
	if err := l.start(ctx, &match); err != nil {
		return resp, err
	}
	info, err := BuildMatchInfo(match)
	if err != nil {
		return resp, err
	}
	resp.Match = info
	return resp, nil
}

func (l *LobbyLogic) Info(ctx context.Context, req types.MatchInfoReq) (resp types.MatchInfoResp, err error) {
	_ = ctx
	match, err := l.resolveMatch(req.MatchID, "")
	if err != nil {
		return resp, err
	}
	info, err := BuildMatchInfo(match)
	if err != nil {
		return resp, err
	}
	resp.Match = info
	return resp, nil
}

func (l *LobbyLogic) List(ctx context.Context, req types.MatchListReq) (resp types.MatchListResp, err error) {
	_ = ctx
	page, limit := req.Page, req.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	matches, total, err := repo.NewMatchRepo(global.DB).List((page-1)*limit, limit, req.Status)
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	resp.Total = total
	playerRepo := repo.NewMatchPlayerRepo(global.DB)
	for _, m := range matches {
		count, err := playerRepo.CountByMatch(m.ID)
		if err != nil {
			return resp, response.ErrResp(err, response.DATABASE_ERROR)
		}
		resp.Matches = append(resp.Matches, types.MatchListItem{
			MatchID:      m.ID,
			LobbyMode:    m.LobbyMode,
			Status:       m.Status,
			CreatedAt:    m.CreatedAt,
			EndTime:      m.EndTime,
			PlayerCount:  int(count),
			ProblemCount: m.ProblemCount,
		})
	}
	return resp, nil
}

// start 进入倒计时开局，条件更新防止并发重复开局
func (l *LobbyLogic) start(ctx context.Context, match *model.Match) error {
	startTime := time.Now().Unix() + int64(global.Config.Engine.Grace().Seconds())
	affected, err := repo.NewMatchRepo(global.DB).Start(match.ID, startTime)
	if err != nil {
		return response.ErrResp(err, response.DATABASE_ERROR)
	}
	if affected == 0 {
		return response.ErrResp(errors.New("match already started"), response.MATCH_NOT_ACTIVE)
	}
	match.Status = model.MatchStatusActive
	match.StartTime = startTime
	zlog.CtxInfof(ctx, "对局开始 match=%d start=%d", match.ID, startTime)
	GetWsHub().SendToMatch(match.ID, types.WsResponse{
		Type:    "match_start",
		Code:    response.SUCCESS.Code,
		Message: response.SUCCESS.Msg,
		Data: map[string]interface{}{
			"match_id":   match.ID,
			"start_time": startTime,
		},
	})
	return nil
}

func (l *LobbyLogic) resolveMatch(matchID, challengeCode string) (model.Match, error) {
	matchRepo := repo.NewMatchRepo(global.DB)
	var match model.Match
	var err error
	switch {
	case matchID != "":
		id, parseErr := strconv.ParseInt(matchID, 10, 64)
		if parseErr != nil {
			return match, response.ErrResp(parseErr, response.PARAM_NOT_VALID)
		}
		match, err = matchRepo.GetByID(id)
	case challengeCode != "":
		match, err = matchRepo.GetByChallengeCode(challengeCode)
	default:
		return match, response.ErrResp(errors.New("match id blank"), response.PARAM_NOT_COMPLETE)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return match, response.ErrResp(err, response.MESSAGE_NOT_EXIST)
		}
		return match, response.ErrResp(err, response.DATABASE_ERROR)
	}
	return match, nil
}

func normalizeLobbyReq(req types.MatchCreateReq) (mode string, maxPlayers, teamSize, problemCount int, err error) {
	mode = req.LobbyMode
	if mode == "" {
		mode = model.LobbyMode1v1
	}
	problemCount = req.ProblemCount
	if problemCount <= 0 {
		problemCount = 1
	}
	if problemCount > lobbyMaxProblems {
		return "", 0, 0, 0, response.ErrResp(errors.New("too many problems"), response.PARAM_NOT_VALID)
	}
	switch mode {
	case model.LobbyMode1v1:
		maxPlayers = 2
	case model.LobbyModeFFA:
		maxPlayers = req.MaxPlayers
		if maxPlayers <= 0 {
			maxPlayers = 4
		}
		if maxPlayers < 2 || maxPlayers > lobbyMaxPlayers {
			return "", 0, 0, 0, response.ErrResp(errors.New("max players invalid"), response.PARAM_NOT_VALID)
		}
	case model.LobbyModeTeam:
		teamSize = req.TeamSize
		if teamSize <= 0 || teamSize*2 > lobbyMaxPlayers {
			return "", 0, 0, 0, response.ErrResp(errors.New("team size invalid"), response.PARAM_NOT_VALID)
		}
		maxPlayers = teamSize * 2
	default:
		return "", 0, 0, 0, response.ErrResp(errors.New("mode invalid"), response.PARAM_NOT_VALID)
	}
	return mode, maxPlayers, teamSize, problemCount, nil
}

// pickTeam team模式按请求或人数少的一队分配，其余模式固定为1
func pickTeam(match model.Match, players []model.MatchPlayer, requested int) (int, error) {
	if match.LobbyMode != model.LobbyModeTeam {
		return 1, nil
	}
	counts := map[int]int{1: 0, 2: 0}
	for _, p := range players {
		counts[p.Team]++
	}
	if requested != 0 {
		if requested != 1 && requested != 2 {
			return 0, response.ErrResp(errors.New("team invalid"), response.PARAM_NOT_VALID)
		}
		if counts[requested] >= match.TeamSize {
			return 0, response.ErrResp(errors.New("team full"), response.MATCH_FULL)
		}
		return requested, nil
	}
	if counts[1] <= counts[2] {
		return 1, nil
	}
	return 2, nil
}

func bothTeamsPresent(players []model.MatchPlayer) bool {
	hasOne, hasTwo := false, false
	for _, p := range players {
		if p.Team == 1 {
			hasOne = true
		}
		if p.Team == 2 {
			hasTwo = true
		}
	}
	return hasOne && hasTwo
}

func newChallengeCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
