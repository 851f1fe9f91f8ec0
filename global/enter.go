package global

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cpduel/configs"
)

var (
	Config *configs.Config
	DB     *gorm.DB
	Rdb    *redis.Client
	Node   *snowflake.Node
	Path   string
)

// 角色等级，Authentication 按大小比较
const (
	ROLE_USER  = 1
	ROLE_ADMIN = 9
)

// gin context 键
const (
	TOKEN_USER_ID = "token_user_id"
	TOKEN_ROLE    = "token_role"
)

const ATOKEN_EFFECTIVE_TIME = 72 * time.Hour

// GenID 生成全局雪花ID
func GenID() int64 {
	return Node.Generate().Int64()
}
