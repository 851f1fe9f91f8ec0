package types

import "time"

type QueueJoinReq struct {
	RatingMin       int      `json:"rating_min" form:"rating_min"`
	RatingMax       int      `json:"rating_max" form:"rating_max"`
	DurationSeconds int64    `json:"duration_seconds" form:"duration_seconds"`
	Tags            []string `json:"tags" form:"tags"`
}

type QueueJoinResp struct {
	Entry QueueEntryInfo `json:"entry"`
}

type QueueLeaveResp struct {
	Removed bool `json:"removed"`
}

type QueueStatusResp struct {
	InQueue bool            `json:"in_queue"`
	Entry   *QueueEntryInfo `json:"entry,omitempty"`
}

type QueueEntryInfo struct {
	EntryID         int64     `json:"entry_id,string"`
	UserID          int64     `json:"user_id,string"`
	RatingMin       int       `json:"rating_min"`
	RatingMax       int       `json:"rating_max"`
	DurationSeconds int64     `json:"duration_seconds"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
}
