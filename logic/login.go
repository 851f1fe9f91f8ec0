package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cpduel/global"
	"cpduel/log/zlog"
	"cpduel/model"
	"cpduel/repo"
	"cpduel/response"
	"cpduel/types"
	"cpduel/utils"
	"cpduel/utils/email"
	"cpduel/utils/jwtUtils"
)

const (
	verifyCodeKeyFmt = "cpduel:verify_code:%s"
	verifyCodeTTL    = 5 * time.Minute
)

type LoginLogic struct {
}

func NewLoginLogic() *LoginLogic {
	return &LoginLogic{}
}

// SendCode 发送注册验证码，redis记录5分钟有效
func (l *LoginLogic) SendCode(ctx context.Context, req types.SendCodeReq) (resp types.SendCodeResp, err error) {
	if !utils.IsValidEmail(req.Email) {
		return resp, response.ErrResp(errors.New("email invalid"), response.EMAIL_NOT_VALID)
	}
	code := utils.GenVerificationCode()
	key := fmt.Sprintf(verifyCodeKeyFmt, req.Email)
	if err := global.Rdb.Set(ctx, key, code, verifyCodeTTL).Err(); err != nil {
		return resp, response.ErrResp(err, response.REDIS_ERROR)
	}
	if err := email.SendCode(req.Email, code); err != nil {
		zlog.CtxErrorf(ctx, "发送验证码邮件失败 email=%s:%v", req.Email, err)
		return resp, response.ErrResp(err, response.EMAIL_SEND_ERROR)
	}
	return resp, nil
}

// Register 校验验证码后建号，初始分1000
func (l *LoginLogic) Register(ctx context.Context, req types.RegisterReq) (resp types.LoginResp, err error) {
	if req.Email == "" || req.Password == "" || req.Username == "" || req.Code == "" {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	if !utils.IsValidEmail(req.Email) {
		return resp, response.ErrResp(errors.New("email invalid"), response.EMAIL_NOT_VALID)
	}
	key := fmt.Sprintf(verifyCodeKeyFmt, req.Email)
	stored, err := global.Rdb.Get(ctx, key).Result()
	if err != nil || stored != req.Code {
		return resp, response.ErrResp(errors.New("code mismatch"), response.VERIFY_CODE_VALID)
	}
	userRepo := repo.NewUserRepo(global.DB)
	if _, err := userRepo.GetByEmail(req.Email); err == nil {
		return resp, response.ErrResp(errors.New("email taken"), response.USER_ALREADY_EXISTS)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	hashed, err := utils.EncryptPassword(req.Password)
	if err != nil {
		return resp, response.ErrResp(err, response.INTERNAL_ERROR)
	}
	user := model.User{
		Email:       req.Email,
		Password:    hashed,
		Username:    req.Username,
		AvatarUrl:   req.AvatarUrl,
		JudgeHandle: req.JudgeHandle,
		Rating:      1000,
		Rank:        RankLabel(1000),
		Role:        global.ROLE_USER,
	}
	if err := userRepo.Create(&user); err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	global.Rdb.Del(ctx, key)
	if user.JudgeHandle != "" {
		GetJudgeQueue().SetUserHandle(user.ID, user.JudgeHandle)
	}
	zlog.CtxInfof(ctx, "注册成功 user=%d email=%s", user.ID, user.Email)
	return l.issueToken(user)
}

// Login 密码登录
func (l *LoginLogic) Login(ctx context.Context, req types.LoginReq) (resp types.LoginResp, err error) {
	_ = ctx
	if req.Email == "" || req.Password == "" {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	user, err := repo.NewUserRepo(global.DB).GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		return resp, response.ErrResp(errors.New("password mismatch"), response.PASSWORD_ERROR)
	}
	return l.issueToken(user)
}

func (l *LoginLogic) issueToken(user model.User) (types.LoginResp, error) {
	token, err := jwtUtils.GenToken(user.ID, user.Role)
	if err != nil {
		return types.LoginResp{}, response.ErrResp(err, response.INTERNAL_ERROR)
	}
	return types.LoginResp{
		Token: token,
		User:  buildUserInfo(user),
	}, nil
}

func buildUserInfo(user model.User) types.UserInfo {
	return types.UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		AvatarUrl:   user.AvatarUrl,
		JudgeHandle: user.JudgeHandle,
		Rating:      user.Rating,
		Wins:        user.Wins,
		Losses:      user.Losses,
		Draws:       user.Draws,
		Rank:        user.Rank,
	}
}
