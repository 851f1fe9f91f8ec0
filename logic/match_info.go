package logic

import (
	"cpduel/global"
	"cpduel/model"
	"cpduel/repo"
	"cpduel/response"
	"cpduel/types"
)

// BuildMatchInfo 组装对局详情：参与者带用户名，题目带跳转链接
func BuildMatchInfo(match model.Match) (types.MatchInfo, error) {
	info := types.MatchInfo{
		MatchID:         match.ID,
		Status:          match.Status,
		LobbyMode:       match.LobbyMode,
		StartTime:       match.StartTime,
		EndTime:         match.EndTime,
		DurationSeconds: match.DurationSeconds,
		WinnerID:        match.WinnerID,
		DrawOfferedBy:   match.DrawOfferedBy,
		ResignedBy:      match.ResignedBy,
		MaxPlayers:      match.MaxPlayers,
		TeamSize:        match.TeamSize,
		ChallengeCode:   match.ChallengeCode,
		CreatedAt:       match.CreatedAt,
	}

	players, err := repo.NewMatchPlayerRepo(global.DB).ListByMatch(match.ID)
	if err != nil {
		return info, response.ErrResp(err, response.DATABASE_ERROR)
	}
	playerIDs := make([]int64, 0, len(players))
	for _, p := range players {
		playerIDs = append(playerIDs, p.PlayerID)
	}
	users, err := repo.NewUserRepo(global.DB).GetByIDs(playerIDs)
	if err != nil {
		return info, response.ErrResp(err, response.DATABASE_ERROR)
	}
	usernames := make(map[int64]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}
	for _, p := range players {
		solvedAt := int64(0)
		if match.IsClassic1v1() {
			switch p.PlayerID {
			case match.Player1ID:
				solvedAt = match.Player1SolvedAt
			case match.Player2ID:
				solvedAt = match.Player2SolvedAt
			}
		}
		info.Players = append(info.Players, types.MatchPlayerInfo{
			PlayerID:     p.PlayerID,
			Username:     usernames[p.PlayerID],
			Team:         p.Team,
			SolvedCount:  p.SolvedCount,
			RatingChange: p.RatingChange,
			SolvedAt:     solvedAt,
			JoinedAt:     p.JoinedAt,
		})
	}

	problems, err := repo.NewMatchProblemRepo(global.DB).ListByMatch(match.ID)
	if err != nil {
		return info, response.ErrResp(err, response.DATABASE_ERROR)
	}
	catalogRepo := repo.NewCodeforcesProblemRepo(global.DB)
	for _, p := range problems {
		url := ""
		if catalog, err := catalogRepo.GetByID(p.ProblemID); err == nil {
			url = catalog.Url
		}
		info.Problems = append(info.Problems, types.MatchProblemInfo{
			Order:      p.Order,
			ProblemID:  p.ProblemID,
			ProblemURL: url,
			Rating:     p.Rating,
		})
	}
	return info, nil
}
