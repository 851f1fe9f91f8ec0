package repo

import (
	"gorm.io/gorm"

	"cpduel/model"
)

type MatchRepo struct {
	DB *gorm.DB
}

func NewMatchRepo(db *gorm.DB) *MatchRepo {
	return &MatchRepo{DB: db}
}

func (r *MatchRepo) Create(match *model.Match) error {
	return r.DB.Create(match).Error
}

func (r *MatchRepo) GetByID(id int64) (model.Match, error) {
	var match model.Match
	err := r.DB.Where("id = ?", id).First(&match).Error
	return match, err
}

func (r *MatchRepo) GetByChallengeCode(code string) (model.Match, error) {
	var match model.Match
	err := r.DB.Where("challenge_code = ? AND status <> ?", code, model.MatchStatusFinished).First(&match).Error
	return match, err
}

func (r *MatchRepo) ListByStatus(status int8) ([]model.Match, error) {
	var matches []model.Match
	err := r.DB.Where("status = ?", status).Order("created_at asc").Find(&matches).Error
	return matches, err
}

func (r *MatchRepo) List(offset, limit int, status *int8) ([]model.Match, int64, error) {
	query := r.DB.Model(&model.Match{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var matches []model.Match
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&matches).Error
	return matches, count, err
}

// Start 等待中 -> 进行中，条件更新保证只推进一次
func (r *MatchRepo) Start(id int64, startTime int64) (int64, error) {
	result := r.DB.Model(&model.Match{}).
		Where("id = ? AND status = ?", id, model.MatchStatusWaiting).
		Updates(map[string]interface{}{
			"status":     model.MatchStatusActive,
			"start_time": startTime,
		})
	return result.RowsAffected, result.Error
}

// Finish 进行中 -> 结束，条件更新是结算幂等的闸门
func (r *MatchRepo) Finish(id int64, fields map[string]interface{}) (int64, error) {
	fields["status"] = model.MatchStatusFinished
	result := r.DB.Model(&model.Match{}).
		Where("id = ? AND status = ?", id, model.MatchStatusActive).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// Cancel 等待中的空房直接关闭
func (r *MatchRepo) Cancel(id int64) error {
	return r.DB.Model(&model.Match{}).
		Where("id = ? AND status = ?", id, model.MatchStatusWaiting).
		Update("status", model.MatchStatusFinished).Error
}

func (r *MatchRepo) SetPlayer2(id int64, playerID int64) error {
	return r.DB.Model(&model.Match{}).
		Where("id = ? AND player2_id = 0", id).
		Update("player2_id", playerID).Error
}

// SetPlayerSolved 只在 solved_at 未写过时落盘，过题只记一次
func (r *MatchRepo) SetPlayerSolved(id int64, slot int, solvedAt int64) (int64, error) {
	column := "player1_solved_at"
	if slot == 2 {
		column = "player2_solved_at"
	}
	result := r.DB.Model(&model.Match{}).
		Where("id = ? AND "+column+" = 0", id).
		Update(column, solvedAt)
	return result.RowsAffected, result.Error
}

func (r *MatchRepo) SetDrawOfferedBy(id int64, userID int64) error {
	return r.DB.Model(&model.Match{}).
		Where("id = ? AND status = ?", id, model.MatchStatusActive).
		Update("draw_offered_by", userID).Error
}
