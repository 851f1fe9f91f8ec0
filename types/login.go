package types

type SendCodeReq struct {
	Email string `json:"email" form:"email"`
}

type SendCodeResp struct {
}

type RegisterReq struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	Username    string `json:"username" form:"username"`
	Code        string `json:"code" form:"code"`
	AvatarUrl   string `json:"avatar_url" form:"avatar_url"`
	JudgeHandle string `json:"judge_handle" form:"judge_handle"`
}

type LoginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type UserInfo struct {
	ID          int64  `json:"id,string"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	AvatarUrl   string `json:"avatar_url"`
	JudgeHandle string `json:"judge_handle"`
	Rating      int    `json:"rating"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`
	Rank        string `json:"rank"`
}

type LoginResp struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type ProfileResp struct {
	User UserInfo `json:"user"`
}

type UpdateProfileReq struct {
	Username    string `json:"username" form:"username"`
	AvatarUrl   string `json:"avatar_url" form:"avatar_url"`
	JudgeHandle string `json:"judge_handle" form:"judge_handle"`
}
