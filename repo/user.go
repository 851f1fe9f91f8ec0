package repo

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cpduel/model"
)

type UserRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func (r *UserRepo) GetByEmail(email string) (model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return user, err
}

func (r *UserRepo) GetByID(id int64) (model.User, error) {
	var user model.User
	err := r.DB.Where("id = ?", id).First(&user).Error
	return user, err
}

func (r *UserRepo) GetByIDs(ids []int64) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// GetForUpdate 行锁读取，结算事务内用，防止并发结算互相覆盖
func (r *UserRepo) GetForUpdate(id int64) (model.User, error) {
	var user model.User
	err := r.DB.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&user).Error
	return user, err
}

func (r *UserRepo) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepo) UpdateProfile(user model.User) error {
	return r.DB.Model(&model.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"username":     user.Username,
		"avatar_url":   user.AvatarUrl,
		"judge_handle": user.JudgeHandle,
	}).Error
}

// ApplyMatchResult 写入结算后的绝对值，调用方需在事务内先 GetForUpdate
func (r *UserRepo) ApplyMatchResult(id int64, rating, wins, losses, draws int, rank string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rating": rating,
		"wins":   wins,
		"losses": losses,
		"draws":  draws,
		"rank":   rank,
	}).Error
}
