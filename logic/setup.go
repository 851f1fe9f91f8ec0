package logic

import (
	"cpduel/global"
)

var (
	defaultSelector *ProblemSelector
	defaultLobby    *LobbyLogic
	defaultEngine   *EngineLogic
)

// Setup 装配核心组件并拉起后台泵与定时器，Init 完成后调用
func Setup() error {
	judgeCfg := global.Config.Judge
	client := NewJudgeClient(judgeCfg.BaseURL, judgeCfg.Timeout(), judgeCfg.MaxSubmissions)

	defaultSelector = NewProblemSelector(client)
	matcher := GetQueueMatcher(defaultSelector)
	manager := GetMatchManager()
	manager.SetPolicy(NewRatingPolicy(global.Config.Engine.RatingPolicy))

	defaultLobby = NewLobbyLogic(defaultSelector)
	defaultEngine = NewEngineLogic(matcher, manager)

	StartJudgeQueue(client)
	return StartEngineScheduler(matcher, manager, defaultSelector)
}

// Shutdown 停掉后台协程，退出前调用
func Shutdown() {
	StopEngineScheduler()
	StopJudgeQueue()
}

func DefaultLobby() *LobbyLogic {
	return defaultLobby
}

func DefaultEngine() *EngineLogic {
	return defaultEngine
}

func DefaultSelector() *ProblemSelector {
	return defaultSelector
}
