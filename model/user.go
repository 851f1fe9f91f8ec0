package model

type User struct {
	CommonModel
	Email       string `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Password    string `gorm:"column:password;type:varchar(255);not null"`
	Username    string `gorm:"column:username;type:varchar(100);not null"`
	AvatarUrl   string `gorm:"column:avatar_url;type:varchar(255);default:''"`
	JudgeHandle string `gorm:"column:judge_handle;type:varchar(100);default:'';index:idx_users_judge_handle;comment:评测平台账号"`
	Rating      int    `gorm:"column:rating;type:int;default:1000;comment:天梯分"`
	Wins        int    `gorm:"column:wins;type:int;default:0;comment:胜场"`
	Losses      int    `gorm:"column:losses;type:int;default:0;comment:负场"`
	Draws       int    `gorm:"column:draws;type:int;default:0;comment:平局"`
	Rank        string `gorm:"column:rank;type:varchar(32);default:'Newbie';comment:段位"`
	Role        int    `gorm:"column:role;type:int;default:1;comment:角色(1用户,9管理员)"`
}

func (u *User) TableName() string {
	return "users"
}

// GamesPlayed 已结算场次，供临时K策略使用
func (u *User) GamesPlayed() int {
	return u.Wins + u.Losses + u.Draws
}
