package repo

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cpduel/model"
)

type MatchSubmissionRepo struct {
	DB *gorm.DB
}

func NewMatchSubmissionRepo(db *gorm.DB) *MatchSubmissionRepo {
	return &MatchSubmissionRepo{DB: db}
}

// Record 幂等写入，唯一键冲突视为已记录过
func (r *MatchSubmissionRepo) Record(submission *model.MatchSubmission) (bool, error) {
	result := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(submission)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *MatchSubmissionRepo) ListByMatch(matchID int64) ([]model.MatchSubmission, error) {
	var submissions []model.MatchSubmission
	err := r.DB.Where("match_id = ?", matchID).Order("solved_at asc").Find(&submissions).Error
	return submissions, err
}

func (r *MatchSubmissionRepo) ListByMatchPlayer(matchID, playerID int64) ([]model.MatchSubmission, error) {
	var submissions []model.MatchSubmission
	err := r.DB.Where("match_id = ? AND player_id = ?", matchID, playerID).
		Order("problem_order asc").Find(&submissions).Error
	return submissions, err
}
