package repo

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cpduel/model"
)

type CodeforcesProblemRepo struct {
	DB *gorm.DB
}

func NewCodeforcesProblemRepo(db *gorm.DB) *CodeforcesProblemRepo {
	return &CodeforcesProblemRepo{DB: db}
}

func (r *CodeforcesProblemRepo) GetByID(id string) (model.CodeforcesProblem, error) {
	var problem model.CodeforcesProblem
	err := r.DB.Where("id = ?", id).First(&problem).Error
	return problem, err
}

func (r *CodeforcesProblemRepo) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.CodeforcesProblem{}).Count(&count).Error
	return count, err
}

// ListByDifficulty 难度区间内候选，按难度升序
func (r *CodeforcesProblemRepo) ListByDifficulty(minDifficulty, maxDifficulty int) ([]model.CodeforcesProblem, error) {
	var problems []model.CodeforcesProblem
	err := r.DB.Where("difficulty >= ? AND difficulty <= ?", minDifficulty, maxDifficulty).
		Order("difficulty asc").
		Find(&problems).Error
	return problems, err
}

// BatchUpsert 题库导入，已有题目跳过
func (r *CodeforcesProblemRepo) BatchUpsert(problems []model.CodeforcesProblem) error {
	batchSize := 500
	for i := 0; i < len(problems); i += batchSize {
		end := i + batchSize
		if end > len(problems) {
			end = len(problems)
		}
		batch := problems[i:end]
		if err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&batch).Error; err != nil {
			return err
		}
	}
	return nil
}
