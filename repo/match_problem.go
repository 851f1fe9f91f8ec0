package repo

import (
	"gorm.io/gorm"

	"cpduel/model"
)

type MatchProblemRepo struct {
	DB *gorm.DB
}

func NewMatchProblemRepo(db *gorm.DB) *MatchProblemRepo {
	return &MatchProblemRepo{DB: db}
}

func (r *MatchProblemRepo) CreateBatch(problems []model.MatchProblem) error {
	if len(problems) == 0 {
		return nil
	}
	return r.DB.Create(&problems).Error
}

func (r *MatchProblemRepo) ListByMatch(matchID int64) ([]model.MatchProblem, error) {
	var problems []model.MatchProblem
	err := r.DB.Where("match_id = ?", matchID).Order("problem_order asc").Find(&problems).Error
	return problems, err
}

// ListProblemIDsByPlayers 玩家们出过的题，配对时作为黑名单
func (r *MatchProblemRepo) ListProblemIDsByPlayers(playerIDs []int64) ([]string, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.DB.Model(&model.MatchProblem{}).
		Where("match_id IN (?)", r.DB.Model(&model.MatchPlayer{}).
			Select("match_id").Where("player_id IN ?", playerIDs)).
		Distinct().
		Pluck("problem_id", &ids).Error
	return ids, err
}
