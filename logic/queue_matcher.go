package logic

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cpduel/global"
	"cpduel/log/zlog"
	"cpduel/model"
	"cpduel/repo"
	"cpduel/response"
	"cpduel/types"
)

const (
	matchmakeLockKey = "cpduel:lock:matchmake"
	matchmakeLockTTL = 10 * time.Second

	MsgNotEnoughPlayers = "Not enough players"
	MsgNoCompatiblePair = "No compatible pairs"
	MsgPassInProgress   = "Matchmake pass already running"
)

// QueueMatcher 匹配器。一次匹配流程必须串行：进程内互斥锁 + redis锁，
// 防止并发两次扫描选中同一对人
type QueueMatcher struct {
	mu       sync.Mutex
	selector *ProblemSelector
}

var queueMatcherOnce sync.Once
var queueMatcher *QueueMatcher

func GetQueueMatcher(selector *ProblemSelector) *QueueMatcher {
	queueMatcherOnce.Do(func() {
		queueMatcher = &QueueMatcher{selector: selector}
	})
	return queueMatcher
}

// Matchmake 一次配对扫描：FIFO取队列，双向区间有交集且时长一致的组合里，
// 找到能出题的第一对
func (m *QueueMatcher) Matchmake(ctx context.Context) (types.EngineMatchmakeResp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	locked, err := m.acquireLock(ctx)
	if err != nil {
		return types.EngineMatchmakeResp{}, response.ErrResp(err, response.REDIS_ERROR)
	}
	if !locked {
		return types.EngineMatchmakeResp{Message: MsgPassInProgress}, nil
	}
	defer m.releaseLock(ctx)

	entries, err := repo.NewQueueRepo(global.DB).ListOrdered()
	if err != nil {
		return types.EngineMatchmakeResp{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if len(entries) < 2 {
		return types.EngineMatchmakeResp{Message: MsgNotEnoughPlayers}, nil
	}

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			band, ok := pairBand(a, b)
			if !ok {
				continue
			}
			tags := unionTags(splitTags(a.Tags), splitTags(b.Tags))
			blacklist, err := repo.NewMatchProblemRepo(global.DB).
				ListProblemIDsByPlayers([]int64{a.UserID, b.UserID})
			if err != nil {
				return types.EngineMatchmakeResp{}, response.ErrResp(err, response.DATABASE_ERROR)
			}
			problems, err := m.selector.Pick(ctx, band, tags, blacklist, 1)
			if err != nil {
				if response.IsCode(err, response.INSUFFICIENT_PROBLEMS) {
					continue
				}
				// 上游/存储故障直接终止本轮，不留半成品
				return types.EngineMatchmakeResp{}, err
			}
			match, err := m.createPairMatch(ctx, a, b, problems[0])
			if err != nil {
				return types.EngineMatchmakeResp{}, err
			}
			if match == nil {
				// 队列记录已被并发消费，换下一对
				continue
			}
			info, err := BuildMatchInfo(*match)
			if err != nil {
				return types.EngineMatchmakeResp{}, err
			}
			zlog.CtxInfof(ctx, "配对成功 match=%d players=%d,%d problem=%s",
				match.ID, a.UserID, b.UserID, problems[0].ID)
			return types.EngineMatchmakeResp{Match: &info}, nil
		}
	}
	return types.EngineMatchmakeResp{Message: MsgNoCompatiblePair}, nil
}

// pairBand 双向兼容判定：两人区间必须有交集、期望时长一致
func pairBand(a, b model.QueueEntry) (Band, bool) {
	if a.DurationSeconds != b.DurationSeconds {
		return Band{}, false
	}
	return Band{Min: a.RatingMin, Max: a.RatingMax}.
		Intersect(Band{Min: b.RatingMin, Max: b.RatingMax})
}

func unionTags(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	union := make([]string, 0, len(a)+len(b))
	for _, t := range append(append([]string{}, a...), b...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		union = append(union, t)
	}
	return union
}

// createPairMatch 建对局事务：两条队列记录的条件删除都必须成功，
// 否则说明有并发消费，整体回滚
func (m *QueueMatcher) createPairMatch(ctx context.Context, a, b model.QueueEntry, problem model.CodeforcesProblem) (*model.Match, error) {
	now := time.Now().Unix()
	grace := int64(global.Config.Engine.Grace().Seconds())
	match := model.Match{
		Status:          model.MatchStatusActive,
		LobbyMode:       model.LobbyMode1v1,
		Player1ID:       a.UserID,
		Player2ID:       b.UserID,
		StartTime:       now + grace,
		DurationSeconds: a.DurationSeconds,
		MaxPlayers:      2,
		ProblemCount:    1,
	}
	raced := false
	err := global.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entryID := range []int64{a.ID, b.ID} {
			affected, err := repo.NewQueueRepo(tx).DeleteByID(entryID)
			if err != nil {
				return err
			}
			if affected == 0 {
				raced = true
				return gorm.ErrRecordNotFound
			}
		}
		if err := repo.NewMatchRepo(tx).Create(&match); err != nil {
			return err
		}
		players := []model.MatchPlayer{
			{MatchID: match.ID, PlayerID: a.UserID, JoinedAt: now},
			{MatchID: match.ID, PlayerID: b.UserID, JoinedAt: now},
		}
		playerRepo := repo.NewMatchPlayerRepo(tx)
		for i := range players {
			if err := playerRepo.Create(&players[i]); err != nil {
				return err
			}
		}
		return repo.NewMatchProblemRepo(tx).CreateBatch([]model.MatchProblem{{
			MatchID:   match.ID,
			Order:     0,
			ProblemID: problem.ID,
			Rating:    problem.Difficulty,
		}})
	})
	if err != nil {
		if raced {
			return nil, nil
		}
		return nil, response.ErrResp(err, response.DATABASE_ERROR)
	}
	return &match, nil
}

func (m *QueueMatcher) acquireLock(ctx context.Context) (bool, error) {
	if global.Rdb == nil {
		return true, nil
	}
	ok, err := global.Rdb.SetNX(ctx, matchmakeLockKey, 1, matchmakeLockTTL).Result()
	if err != nil && err != redis.Nil {
		return false, err
	}
	return ok, nil
}

func (m *QueueMatcher) releaseLock(ctx context.Context) {
	if global.Rdb == nil {
		return
	}
	if err := global.Rdb.Del(ctx, matchmakeLockKey).Err(); err != nil {
		zlog.CtxWarnf(ctx, "释放匹配锁失败:%v", err)
	}
}
