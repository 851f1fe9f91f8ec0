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

const MsgNoActiveMatches = "No active matches"

// EngineLogic 引擎入口：matchmake与poll两个动作。管理员可直接触发，
// 普通用户必须与动作相关(在队列里/在进行中的对局里)
type EngineLogic struct {
	matcher *QueueMatcher
	manager *MatchManager
}

func NewEngineLogic(matcher *QueueMatcher, manager *MatchManager) *EngineLogic {
	return &EngineLogic{matcher: matcher, manager: manager}
}

func (l *EngineLogic) Execute(ctx context.Context, userID int64, role int, action string) (interface{}, error) {
	switch action {
	case types.EngineActionMatchmake:
		if role != global.ROLE_ADMIN {
			if err := l.requireQueued(userID); err != nil {
				return nil, err
			}
		}
		return l.matcher.Matchmake(ctx)
	case types.EngineActionPoll:
		if role != global.ROLE_ADMIN {
			if err := l.requireActiveMatch(userID); err != nil {
				return nil, err
			}
		}
		results, err := l.manager.PollPass(ctx)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return types.EnginePollResp{Message: MsgNoActiveMatches}, nil
		}
		return types.EnginePollResp{Results: results}, nil
	default:
		return nil, response.ErrResp(errors.New("unknown action"), response.ACTION_NOT_EXIST)
	}
}

func (l *EngineLogic) requireQueued(userID int64) error {
	_, err := repo.NewQueueRepo(global.DB).GetByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ErrResp(err, response.NOT_IN_QUEUE)
		}
		return response.ErrResp(err, response.DATABASE_ERROR)
	}
	return nil
}

func (l *EngineLogic) requireActiveMatch(userID int64) error {
	count, err := repo.NewMatchPlayerRepo(global.DB).CountActiveByPlayer(userID)
	if err != nil {
		return response.ErrResp(err, response.DATABASE_ERROR)
	}
	if count == 0 {
		return response.ErrResp(errors.New("no active match"), response.NOT_MATCH_PARTICIPANT)
	}
	return nil
}
