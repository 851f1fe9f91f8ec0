package logic

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"cpduel/global"
	"cpduel/model"
	"cpduel/repo"
	"cpduel/response"
	"cpduel/types"
)

type QueueLogic struct {
}

func NewQueueLogic() *QueueLogic {
	return &QueueLogic{}
}

// Join 进入快速匹配队列，一人同时只能有一条队列记录
func (l *QueueLogic) Join(ctx context.Context, userID int64, req types.QueueJoinReq) (resp types.QueueJoinResp, err error) {
	_ = ctx
	if userID == 0 {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	if req.RatingMin < 0 || req.RatingMax < req.RatingMin || req.DurationSeconds <= 0 {
		return resp, response.ErrResp(errors.New("band invalid"), response.PARAM_NOT_VALID)
	}
	user, err := repo.NewUserRepo(global.DB).GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if user.JudgeHandle == "" {
		return resp, response.ErrResp(errors.New("judge handle blank"), response.PARAM_NOT_VALID)
	}
	queueRepo := repo.NewQueueRepo(global.DB)
	if existing, err := queueRepo.GetByUser(userID); err == nil && existing.ID != 0 {
		return resp, response.ErrResp(errors.New("already queued"), response.ALREADY_IN_QUEUE)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	entry := model.QueueEntry{
		UserID:          userID,
		RatingMin:       req.RatingMin,
		RatingMax:       req.RatingMax,
		DurationSeconds: req.DurationSeconds,
		Tags:            joinTags(req.Tags),
	}
	if err := queueRepo.Create(&entry); err != nil {
		// 唯一索引兜底并发重复入队
		return resp, response.ErrResp(err, response.ALREADY_IN_QUEUE)
	}
	resp.Entry = buildQueueEntryInfo(entry)
	return resp, nil
}

func (l *QueueLogic) Leave(ctx context.Context, userID int64) (resp types.QueueLeaveResp, err error) {
	_ = ctx
	if userID == 0 {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	removed, err := repo.NewQueueRepo(global.DB).DeleteByUser(userID)
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	resp.Removed = removed > 0
	return resp, nil
}

func (l *QueueLogic) Status(ctx context.Context, userID int64) (resp types.QueueStatusResp, err error) {
	_ = ctx
	entry, err := repo.NewQueueRepo(global.DB).GetByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.QueueStatusResp{InQueue: false}, nil
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	info := buildQueueEntryInfo(entry)
	return types.QueueStatusResp{InQueue: true, Entry: &info}, nil
}

func buildQueueEntryInfo(entry model.QueueEntry) types.QueueEntryInfo {
	return types.QueueEntryInfo{
		EntryID:         entry.ID,
		UserID:          entry.UserID,
		RatingMin:       entry.RatingMin,
		RatingMax:       entry.RatingMax,
		DurationSeconds: entry.DurationSeconds,
		Tags:            splitTags(entry.Tags),
		CreatedAt:       entry.CreatedAt,
	}
}

func joinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return strings.Join(cleaned, ",")
}

func splitTags(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
