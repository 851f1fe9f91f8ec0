package repo

import (
	"gorm.io/gorm"

	"cpduel/model"
)

type QueueRepo struct {
	DB *gorm.DB
}

func NewQueueRepo(db *gorm.DB) *QueueRepo {
	return &QueueRepo{DB: db}
}

func (r *QueueRepo) Create(entry *model.QueueEntry) error {
	return r.DB.Create(entry).Error
}

func (r *QueueRepo) GetByUser(userID int64) (model.QueueEntry, error) {
	var entry model.QueueEntry
	err := r.DB.Where("user_id = ?", userID).First(&entry).Error
	return entry, err
}

// ListOrdered 按入队时间先进先出
func (r *QueueRepo) ListOrdered() ([]model.QueueEntry, error) {
	var entries []model.QueueEntry
	err := r.DB.Order("created_at asc, id asc").Find(&entries).Error
	return entries, err
}

// DeleteByID 条件删除，返回实际删除行数；并发配对靠它失败收敛
func (r *QueueRepo) DeleteByID(id int64) (int64, error) {
	result := r.DB.Where("id = ?", id).Delete(&model.QueueEntry{})
	return result.RowsAffected, result.Error
}

func (r *QueueRepo) DeleteByUser(userID int64) (int64, error) {
	result := r.DB.Where("user_id = ?", userID).Delete(&model.QueueEntry{})
	return result.RowsAffected, result.Error
}
