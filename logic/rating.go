package logic

import "math"

// 天梯结算分数
const (
	ScoreWin  = 1.0
	ScoreDraw = 0.5
	ScoreLoss = 0.0
)

const DefaultKFactor = 32

// RatingPolicy K值选择策略，全局统一应用
type RatingPolicy interface {
	K(gamesPlayed int) float64
}

// FixedK 固定K值，经典1v1路径默认K=32
type FixedK struct {
	Factor float64
}

func (p FixedK) K(gamesPlayed int) float64 {
	if p.Factor <= 0 {
		return DefaultKFactor
	}
	return p.Factor
}

// ProvisionalK 新手期放大K值加速收敛
type ProvisionalK struct {
	Provisional      float64
	Stable           float64
	ProvisionalGames int
}

func (p ProvisionalK) K(gamesPlayed int) float64 {
	if gamesPlayed < p.ProvisionalGames {
		return p.Provisional
	}
	return p.Stable
}

// NewRatingPolicy 按配置名构造策略，未知名称回退固定K
func NewRatingPolicy(name string) RatingPolicy {
	if name == "provisional" {
		return ProvisionalK{Provisional: 40, Stable: 20, ProvisionalGames: 30}
	}
	return FixedK{Factor: DefaultKFactor}
}

// EloExpected A对B的期望得分
func EloExpected(ratingA, ratingB int) float64 {
	return 1 / (1 + math.Pow(10, float64(ratingB-ratingA)/400))
}

// Elo 经典零和结算：deltaB恒为-deltaA
func Elo(ratingA, ratingB int, scoreA float64, k float64) (int, int) {
	expected := EloExpected(ratingA, ratingB)
	deltaA := int(math.Round(k * (scoreA - expected)))
	return deltaA, -deltaA
}

// EloDelta 单边结算，多人模式按对手逐一计算后取平均
func EloDelta(rating, opponentRating int, score float64, k float64) float64 {
	return k * (score - EloExpected(rating, opponentRating))
}

// 段位区间，左闭右开、连续且覆盖全部整数
var rankBounds = []struct {
	Below int
	Label string
}{
	{900, "Beginner"},
	{1100, "Newbie"},
	{1300, "Pupil"},
	{1500, "Specialist"},
	{1700, "Expert"},
	{1900, "Candidate Master"},
	{2100, "Master"},
}

// RankLabel rating到段位
func RankLabel(rating int) string {
	for _, bound := range rankBounds {
		if rating < bound.Below {
			return bound.Label
		}
	}
	return "Grandmaster"
}
