package logic

import (
	"sync"

	"github.com/go-co-op/gocron/v2"

	"cpduel/global"
	"cpduel/log/zlog"
)

// EngineScheduler 引擎定时器：定时配对、定时poll、定期刷新题库
type EngineScheduler struct {
	scheduler gocron.Scheduler
	matcher   *QueueMatcher
	manager   *MatchManager
	selector  *ProblemSelector
}

var engineSchedulerOnce sync.Once
var engineScheduler *EngineScheduler

func StartEngineScheduler(matcher *QueueMatcher, manager *MatchManager, selector *ProblemSelector) error {
	var initErr error
	engineSchedulerOnce.Do(func() {
		s, err := gocron.NewScheduler()
		if err != nil {
			initErr = err
			return
		}
		engineScheduler = &EngineScheduler{
			scheduler: s,
			matcher:   matcher,
			manager:   manager,
			selector:  selector,
		}
		initErr = engineScheduler.register()
		if initErr == nil {
			s.Start()
		}
	})
	return initErr
}

func StopEngineScheduler() {
	if engineScheduler == nil {
		return
	}
	if err := engineScheduler.scheduler.Shutdown(); err != nil {
		zlog.Warnf("关闭引擎定时器失败:%v", err)
	}
}

func (s *EngineScheduler) register() error {
	cfg := global.Config.Engine
	if _, err := s.scheduler.NewJob(
		gocron.DurationJob(cfg.MatchmakeInterval()),
		gocron.NewTask(s.matchmakeTick),
	); err != nil {
		return err
	}
	if _, err := s.scheduler.NewJob(
		gocron.DurationJob(cfg.PollInterval()),
		gocron.NewTask(s.pollTick),
	); err != nil {
		return err
	}
	if _, err := s.scheduler.NewJob(
		gocron.DurationJob(cfg.CatalogRefreshInterval()),
		gocron.NewTask(s.catalogTick),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	); err != nil {
		return err
	}
	return nil
}

func (s *EngineScheduler) matchmakeTick() {
	ctx := zlog.NewCtx()
	resp, err := s.matcher.Matchmake(ctx)
	if err != nil {
		zlog.CtxWarnf(ctx, "定时配对失败:%v", err)
		return
	}
	if resp.Match != nil {
		zlog.CtxInfof(ctx, "定时配对产出对局 match=%d", resp.Match.MatchID)
	}
}

func (s *EngineScheduler) pollTick() {
	ctx := zlog.NewCtx()
	results, err := s.manager.PollPass(ctx)
	if err != nil {
		zlog.CtxWarnf(ctx, "定时poll失败:%v", err)
		return
	}
	if len(results) > 0 {
		zlog.CtxInfof(ctx, "定时poll产出事件 count=%d", len(results))
	}
}

func (s *EngineScheduler) catalogTick() {
	ctx := zlog.NewCtx()
	if err := s.selector.RefreshCatalog(ctx); err != nil {
		zlog.CtxWarnf(ctx, "刷新题库失败:%v", err)
	}
}
