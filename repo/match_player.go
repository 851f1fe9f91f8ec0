package repo

import (
	"gorm.io/gorm"

	"cpduel/model"
)

type MatchPlayerRepo struct {
	DB *gorm.DB
}

func NewMatchPlayerRepo(db *gorm.DB) *MatchPlayerRepo {
	return &MatchPlayerRepo{DB: db}
}

func (r *MatchPlayerRepo) Create(player *model.MatchPlayer) error {
	return r.DB.Create(player).Error
}

func (r *MatchPlayerRepo) ListByMatch(matchID int64) ([]model.MatchPlayer, error) {
	var players []model.MatchPlayer
	err := r.DB.Where("match_id = ?", matchID).Order("joined_at asc, id asc").Find(&players).Error
	return players, err
}

func (r *MatchPlayerRepo) CountByMatch(matchID int64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.MatchPlayer{}).Where("match_id = ?", matchID).Count(&count).Error
	return count, err
}

func (r *MatchPlayerRepo) Get(matchID, playerID int64) (model.MatchPlayer, error) {
	var player model.MatchPlayer
	err := r.DB.Where("match_id = ? AND player_id = ?", matchID, playerID).First(&player).Error
	return player, err
}

func (r *MatchPlayerRepo) Delete(matchID, playerID int64) (int64, error) {
	result := r.DB.Where("match_id = ? AND player_id = ?", matchID, playerID).Delete(&model.MatchPlayer{})
	return result.RowsAffected, result.Error
}

func (r *MatchPlayerRepo) IncrementSolved(matchID, playerID int64) error {
	return r.DB.Model(&model.MatchPlayer{}).
		Where("match_id = ? AND player_id = ?", matchID, playerID).
		Update("solved_count", gorm.Expr("solved_count + 1")).Error
}

func (r *MatchPlayerRepo) UpdateRatingChange(matchID, playerID int64, change int) error {
	return r.DB.Model(&model.MatchPlayer{}).
		Where("match_id = ? AND player_id = ?", matchID, playerID).
		Update("rating_change", change).Error
}

// CountActiveByPlayer 玩家当前参与的进行中对局数
func (r *MatchPlayerRepo) CountActiveByPlayer(playerID int64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.MatchPlayer{}).
		Joins("JOIN matches ON matches.id = match_players.match_id").
		Where("match_players.player_id = ? AND matches.status = ?", playerID, model.MatchStatusActive).
		Count(&count).Error
	return count, err
}

// ListMatchIDsByPlayer 玩家参与过的全部对局
func (r *MatchPlayerRepo) ListMatchIDsByPlayer(playerID int64) ([]int64, error) {
	var ids []int64
	err := r.DB.Model(&model.MatchPlayer{}).Where("player_id = ?", playerID).Pluck("match_id", &ids).Error
	return ids, err
}
