package model

type QueueEntry struct {
	CommonModel
	UserID          int64  `gorm:"column:user_id;type:bigint;not null;uniqueIndex:idx_queue_entry_user_id;comment:玩家ID"`
	RatingMin       int    `gorm:"column:rating_min;type:int;not null;comment:期望题目难度下限"`
	RatingMax       int    `gorm:"column:rating_max;type:int;not null;comment:期望题目难度上限"`
	DurationSeconds int64  `gorm:"column:duration_seconds;type:bigint;not null;comment:期望对局时长(秒)"`
	Tags            string `gorm:"column:tags;type:varchar(512);default:'';comment:期望标签,逗号分隔"`
}

func (q *QueueEntry) TableName() string {
	return "queue_entries"
}
