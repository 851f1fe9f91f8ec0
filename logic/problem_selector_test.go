package logic

import (
	"testing"

	"cpduel/model"
)

func TestBandIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Band
		want   Band
		wantOK bool
	}{
		{"overlap", Band{800, 1200}, Band{1000, 1400}, Band{1000, 1200}, true},
		{"contained", Band{800, 1600}, Band{1000, 1200}, Band{1000, 1200}, true},
		{"touching", Band{800, 1000}, Band{1000, 1400}, Band{1000, 1000}, true},
		{"disjoint", Band{800, 900}, Band{1000, 1400}, Band{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.wantOK {
				t.Fatalf("Intersect ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Intersect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFilterCandidates(t *testing.T) {
	problems := []model.CodeforcesProblem{
		{ID: "100A", Difficulty: 800, Tags: "dp,graphs"},
		{ID: "200B", Difficulty: 900, Tags: "dp"},
		{ID: "300C", Difficulty: 1000, Tags: "greedy"},
		{ID: "400D", Difficulty: 1100, Tags: "dp,graphs,trees"},
	}

	got := filterCandidates(problems, []string{"dp", "graphs"}, nil)
	if len(got) != 2 || got[0].ID != "100A" || got[1].ID != "400D" {
		t.Errorf("tag filter picked %v, want [100A 400D]", ids(got))
	}

	got = filterCandidates(problems, nil, []string{"200B", "300C"})
	if len(got) != 2 || got[0].ID != "100A" || got[1].ID != "400D" {
		t.Errorf("blacklist filter picked %v, want [100A 400D]", ids(got))
	}

	got = filterCandidates(problems, nil, nil)
	if len(got) != len(problems) {
		t.Errorf("no filters picked %d, want all %d", len(got), len(problems))
	}
}

func TestSelectSpreadSingle(t *testing.T) {
	candidates := []model.CodeforcesProblem{
		{ID: "a", Difficulty: 800},
		{ID: "b", Difficulty: 1000},
		{ID: "c", Difficulty: 1200},
	}
	picked := selectSpread(candidates, 1, func(n int) int { return 1 })
	if len(picked) != 1 || picked[0].ID != "b" {
		t.Errorf("selectSpread(1) = %v, want [b]", ids(picked))
	}
}

func TestSelectSpreadAscending(t *testing.T) {
	candidates := []model.CodeforcesProblem{
		{ID: "a", Difficulty: 800},
		{ID: "b", Difficulty: 900},
		{ID: "c", Difficulty: 1000},
		{ID: "d", Difficulty: 1200},
		{ID: "e", Difficulty: 1400},
		{ID: "f", Difficulty: 1600},
	}
	picked := selectSpread(candidates, 3, func(n int) int { return 0 })
	if len(picked) != 3 {
		t.Fatalf("picked %d problems, want 3", len(picked))
	}
	for i := 1; i < len(picked); i++ {
		if picked[i].Difficulty < picked[i-1].Difficulty {
			t.Errorf("difficulties not ascending: %v", ids(picked))
		}
	}
	// 每桶取第一个：a, c, e
	if picked[0].ID != "a" || picked[1].ID != "c" || picked[2].ID != "e" {
		t.Errorf("bucket picks = %v, want [a c e]", ids(picked))
	}
}

func TestSelectSpreadNoDuplicates(t *testing.T) {
	candidates := []model.CodeforcesProblem{
		{ID: "a", Difficulty: 800},
		{ID: "b", Difficulty: 900},
		{ID: "c", Difficulty: 1000},
		{ID: "d", Difficulty: 1100},
	}
	picked := selectSpread(candidates, 4, func(n int) int { return 0 })
	seen := make(map[string]struct{})
	for _, p := range picked {
		if _, ok := seen[p.ID]; ok {
			t.Fatalf("duplicate problem %s in %v", p.ID, ids(picked))
		}
		seen[p.ID] = struct{}{}
	}
}

func TestSelectSpreadFallbackKeepsCount(t *testing.T) {
	// 题库里同一道题可能重复出现（division镜像），撞重后必须从剩余候选补齐
	candidates := []model.CodeforcesProblem{
		{ID: "a", Difficulty: 800},
		{ID: "a", Difficulty: 800},
		{ID: "b", Difficulty: 900},
	}
	picked := selectSpread(candidates, 2, func(n int) int { return 0 })
	if len(picked) != 2 {
		t.Fatalf("picked %d problems, want 2: %v", len(picked), ids(picked))
	}
	if picked[0].ID == picked[1].ID {
		t.Errorf("duplicate pick after fallback: %v", ids(picked))
	}
}

func ids(problems []model.CodeforcesProblem) []string {
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.ID)
	}
	return out
}
