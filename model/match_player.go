package model

type MatchPlayer struct {
	CommonModel
	MatchID      int64 `gorm:"column:match_id;type:bigint;not null;uniqueIndex:idx_match_players_match_player,priority:1;comment:对局ID"`
	PlayerID     int64 `gorm:"column:player_id;type:bigint;not null;uniqueIndex:idx_match_players_match_player,priority:2;index:idx_match_players_player;comment:玩家ID"`
	Team         int   `gorm:"column:team;type:int;default:0;comment:队伍编号(team模式)"`
	SolvedCount  int   `gorm:"column:solved_count;type:int;default:0;comment:通过题数"`
	RatingChange int   `gorm:"column:rating_change;type:int;default:0;comment:分数变动"`
	JoinedAt     int64 `gorm:"column:joined_at;type:bigint;not null;comment:加入时间戳"`
}

func (p *MatchPlayer) TableName() string {
	return "match_players"
}
