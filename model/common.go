package model

import (
	"time"

	"gorm.io/gorm"

	"cpduel/global"
)

type CommonModel struct {
	ID        int64     `gorm:"column:id;type:bigint;primaryKey" json:"id,string"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// BeforeCreate 统一分配雪花ID
func (m *CommonModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == 0 && global.Node != nil {
		m.ID = global.GenID()
	}
	return nil
}
