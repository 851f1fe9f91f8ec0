package logic

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"cpduel/global"
	"cpduel/log/zlog"
	"cpduel/model"
	"cpduel/repo"
)

const (
	judgeScanInterval    = 2 * time.Second
	judgeRequestInterval = 200 * time.Millisecond
)

// JudgeFetchQueue 限速拉取泵：把活跃对局的参与者排队，按节奏请求评测平台，
// 结果缓存在内存里，poll不直接打上游
type JudgeFetchQueue struct {
	mu          sync.RWMutex
	client      *JudgeClient
	submissions map[int64][]JudgeSubmission
	handles     map[int64]string
	queue       []int64
	queued      map[int64]struct{}
	scanTicker  *time.Ticker
	reqTicker   *time.Ticker
	stopCh      chan struct{}
	running     int32
}

var judgeQueueOnce sync.Once
var judgeQueue *JudgeFetchQueue

func GetJudgeQueue() *JudgeFetchQueue {
	judgeQueueOnce.Do(func() {
		judgeQueue = &JudgeFetchQueue{
			submissions: make(map[int64][]JudgeSubmission),
			handles:     make(map[int64]string),
			queue:       make([]int64, 0),
			queued:      make(map[int64]struct{}),
		}
	})
	return judgeQueue
}

func StartJudgeQueue(client *JudgeClient) {
	q := GetJudgeQueue()
	q.client = client
	q.Start(judgeScanInterval, judgeRequestInterval)
}

func StopJudgeQueue() {
	GetJudgeQueue().Stop()
}

func (q *JudgeFetchQueue) Start(scanInterval, requestInterval time.Duration) {
	if !atomic.CompareAndSwapInt32(&q.running, 0, 1) {
		return
	}
	q.scanTicker = time.NewTicker(scanInterval)
	q.reqTicker = time.NewTicker(requestInterval)
	q.stopCh = make(chan struct{})
	go q.scanLoop()
	go q.requestLoop()
}

func (q *JudgeFetchQueue) Stop() {
	if !atomic.CompareAndSwapInt32(&q.running, 1, 0) {
		return
	}
	if q.scanTicker != nil {
		q.scanTicker.Stop()
	}
	if q.reqTicker != nil {
		q.reqTicker.Stop()
	}
	if q.stopCh != nil {
		close(q.stopCh)
	}
}

// scanLoop 周期把活跃对局的参与者塞进请求队列
func (q *JudgeFetchQueue) scanLoop() {
	for {
		select {
		case <-q.scanTicker.C:
			matches, err := repo.NewMatchRepo(global.DB).ListByStatus(model.MatchStatusActive)
			if err != nil {
				zlog.Warnf("扫描活跃对局失败:%v", err)
				continue
			}
			playerRepo := repo.NewMatchPlayerRepo(global.DB)
			for _, match := range matches {
				players, err := playerRepo.ListByMatch(match.ID)
				if err != nil {
					zlog.Warnf("读取对局参与者失败:%v", err)
					continue
				}
				for _, p := range players {
					q.Enqueue(p.PlayerID)
				}
			}
		case <-q.stopCh:
			return
		}
	}
}

// requestLoop 200ms一个请求，上游故障只影响当前这个人
func (q *JudgeFetchQueue) requestLoop() {
	for {
		select {
		case <-q.reqTicker.C:
			userID, ok := q.pop()
			if !ok {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), judgeRequestTimeout)
			handle, ok := q.getHandle(ctx, userID)
			if !ok {
				cancel()
				continue
			}
			submissions, err := q.client.FetchSubmissions(ctx, handle)
			cancel()
			if err != nil {
				zlog.Warnf("评测平台请求失败 handle=%s:%v", handle, err)
				continue
			}
			q.setSubmissions(userID, submissions)
		case <-q.stopCh:
			return
		}
	}
}

func (q *JudgeFetchQueue) Enqueue(userID int64) {
	if userID == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.queued[userID]; ok {
		return
	}
	q.queue = append(q.queue, userID)
	q.queued[userID] = struct{}{}
}

func (q *JudgeFetchQueue) pop() (int64, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queue) == 0 {
		return 0, false
	}
	userID := q.queue[0]
	q.queue = q.queue[1:]
	delete(q.queued, userID)
	return userID, true
}

func (q *JudgeFetchQueue) getHandle(ctx context.Context, userID int64) (string, bool) {
	q.mu.RLock()
	handle, ok := q.handles[userID]
	q.mu.RUnlock()
	if ok && handle != "" {
		return handle, true
	}
	user, err := repo.NewUserRepo(global.DB).GetByID(userID)
	if err != nil {
		zlog.CtxWarnf(ctx, "获取用户失败:%v", err)
		return "", false
	}
	if user.JudgeHandle == "" {
		return "", false
	}
	q.mu.Lock()
	q.handles[userID] = user.JudgeHandle
	q.mu.Unlock()
	return user.JudgeHandle, true
}

// SetUserHandle 用户改绑评测账号时刷新缓存
func (q *JudgeFetchQueue) SetUserHandle(userID int64, handle string) {
	if userID == 0 || handle == "" {
		return
	}
	q.mu.Lock()
	q.handles[userID] = handle
	q.mu.Unlock()
}

func (q *JudgeFetchQueue) setSubmissions(userID int64, submissions []JudgeSubmission) {
	items := make([]JudgeSubmission, len(submissions))
	copy(items, submissions)
	q.mu.Lock()
	q.submissions[userID] = items
	q.mu.Unlock()
}

// GetUserSubmissions 读取缓存的最近提交，无数据返回nil
func (q *JudgeFetchQueue) GetUserSubmissions(userID int64) []JudgeSubmission {
	q.mu.RLock()
	defer q.mu.RUnlock()
	items := q.submissions[userID]
	if len(items) == 0 {
		return nil
	}
	result := make([]JudgeSubmission, len(items))
	copy(result, items)
	return result
}
