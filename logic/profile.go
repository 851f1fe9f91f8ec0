package logic

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cpduel/global"
	"cpduel/repo"
	"cpduel/response"
	"cpduel/types"
)

type ProfileLogic struct {
}

func NewProfileLogic() *ProfileLogic {
	return &ProfileLogic{}
}

func (l *ProfileLogic) Get(ctx context.Context, userID int64) (resp types.ProfileResp, err error) {
	_ = ctx
	user, err := repo.NewUserRepo(global.DB).GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	resp.User = buildUserInfo(user)
	return resp, nil
}

// Update 改资料。judge_handle变更后同步评测拉取缓存
func (l *ProfileLogic) Update(ctx context.Context, userID int64, req types.UpdateProfileReq) (resp types.ProfileResp, err error) {
	_ = ctx
	userRepo := repo.NewUserRepo(global.DB)
	user, err := userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.AvatarUrl != "" {
		user.AvatarUrl = req.AvatarUrl
	}
	if req.JudgeHandle != "" && req.JudgeHandle != user.JudgeHandle {
		user.JudgeHandle = req.JudgeHandle
		GetJudgeQueue().SetUserHandle(user.ID, req.JudgeHandle)
	}
	if err := userRepo.UpdateProfile(user); err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	resp.User = buildUserInfo(user)
	return resp, nil
}
