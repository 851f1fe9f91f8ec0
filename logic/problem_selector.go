package logic

import (
	"context"
	"errors"
	"math/rand"
	"sort"

	"cpduel/global"
	"cpduel/log/zlog"
	"cpduel/model"
	"cpduel/repo"
	"cpduel/response"
)

// Band 题目难度区间，闭区间
type Band struct {
	Min int
	Max int
}

func (b Band) Contains(rating int) bool {
	return rating >= b.Min && rating <= b.Max
}

// Intersect 两个区间的交集，空集返回false
func (b Band) Intersect(other Band) (Band, bool) {
	result := Band{Min: b.Min, Max: b.Max}
	if other.Min > result.Min {
		result.Min = other.Min
	}
	if other.Max < result.Max {
		result.Max = other.Max
	}
	if result.Min > result.Max {
		return Band{}, false
	}
	return result, true
}

// ProblemSelector 按难度区间/标签/黑名单筛题，题库为空时从评测平台补一次
type ProblemSelector struct {
	judge *JudgeClient
}

func NewProblemSelector(judge *JudgeClient) *ProblemSelector {
	return &ProblemSelector{judge: judge}
}

// Pick 选count道题。单题均匀随机；多题按难度升序分桶各取一道，保证递增
func (s *ProblemSelector) Pick(ctx context.Context, band Band, tags []string, blacklist []string, count int) ([]model.CodeforcesProblem, error) {
	if count <= 0 {
		return nil, response.ErrResp(errors.New("count invalid"), response.PARAM_NOT_VALID)
	}
	if err := s.ensureCatalog(ctx); err != nil {
		return nil, err
	}
	problems, err := repo.NewCodeforcesProblemRepo(global.DB).ListByDifficulty(band.Min, band.Max)
	if err != nil {
		return nil, response.ErrResp(err, response.DATABASE_ERROR)
	}
	candidates := filterCandidates(problems, tags, blacklist)
	if len(candidates) < count {
		return nil, response.ErrResp(errors.New("insufficient candidates"), response.INSUFFICIENT_PROBLEMS)
	}
	return selectSpread(candidates, count, rand.Intn), nil
}

// ensureCatalog 题库为空时拉一次全量，上游失败向上抛502
func (s *ProblemSelector) ensureCatalog(ctx context.Context) error {
	problemRepo := repo.NewCodeforcesProblemRepo(global.DB)
	count, err := problemRepo.Count()
	if err != nil {
		return response.ErrResp(err, response.DATABASE_ERROR)
	}
	if count > 0 {
		return nil
	}
	return s.RefreshCatalog(ctx)
}

// RefreshCatalog 全量同步题库
func (s *ProblemSelector) RefreshCatalog(ctx context.Context) error {
	problems, err := s.judge.FetchProblemCatalog(ctx)
	if err != nil {
		return response.ErrResp(err, response.UPSTREAM_ERROR)
	}
	if len(problems) == 0 {
		return response.ErrResp(errors.New("catalog empty"), response.UPSTREAM_ERROR)
	}
	if err := repo.NewCodeforcesProblemRepo(global.DB).BatchUpsert(problems); err != nil {
		return response.ErrResp(err, response.DATABASE_ERROR)
	}
	zlog.CtxInfof(ctx, "题库同步完成，总数:%d", len(problems))
	return nil
}

// filterCandidates 标签全覆盖且不在黑名单里的候选，保持难度升序
func filterCandidates(problems []model.CodeforcesProblem, tags []string, blacklist []string) []model.CodeforcesProblem {
	banned := make(map[string]struct{}, len(blacklist))
	for _, id := range blacklist {
		banned[id] = struct{}{}
	}
	candidates := make([]model.CodeforcesProblem, 0, len(problems))
	for _, p := range problems {
		if _, ok := banned[p.ID]; ok {
			continue
		}
		if !p.HasTags(tags) {
			continue
		}
		candidates = append(candidates, p)
	}
	return candidates
}

// selectSpread 候选按难度升序等距分桶，每桶随机取一道；
// 桶里撞到已取过的题就在剩余未取的候选里随机补一道
func selectSpread(candidates []model.CodeforcesProblem, count int, intn func(int) int) []model.CodeforcesProblem {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Difficulty < candidates[j].Difficulty
	})
	if count == 1 {
		return []model.CodeforcesProblem{candidates[intn(len(candidates))]}
	}
	used := make(map[string]struct{}, count)
	picked := make([]model.CodeforcesProblem, 0, count)
	for i := 0; i < count; i++ {
		lo := i * len(candidates) / count
		hi := (i + 1) * len(candidates) / count
		if hi <= lo {
			hi = lo + 1
		}
		p := candidates[lo+intn(hi-lo)]
		if _, ok := used[p.ID]; ok {
			remaining := make([]model.CodeforcesProblem, 0, len(candidates))
			for _, c := range candidates {
				if _, taken := used[c.ID]; !taken {
					remaining = append(remaining, c)
				}
			}
			if len(remaining) == 0 {
				break
			}
			p = remaining[intn(len(remaining))]
		}
		used[p.ID] = struct{}{}
		picked = append(picked, p)
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].Difficulty < picked[j].Difficulty
	})
	return picked
}
