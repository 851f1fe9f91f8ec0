package logic

import (
	"reflect"
	"testing"

	"cpduel/model"
)

func TestPairBand(t *testing.T) {
	tests := []struct {
		name   string
		a, b   model.QueueEntry
		want   Band
		wantOK bool
	}{
		{
			name:   "overlapping bands same duration",
			a:      model.QueueEntry{RatingMin: 800, RatingMax: 1200, DurationSeconds: 1800},
			b:      model.QueueEntry{RatingMin: 1000, RatingMax: 1400, DurationSeconds: 1800},
			want:   Band{Min: 1000, Max: 1200},
			wantOK: true,
		},
		{
			name:   "identical bands",
			a:      model.QueueEntry{RatingMin: 900, RatingMax: 1100, DurationSeconds: 900},
			b:      model.QueueEntry{RatingMin: 900, RatingMax: 1100, DurationSeconds: 900},
			want:   Band{Min: 900, Max: 1100},
			wantOK: true,
		},
		{
			name:   "disjoint bands",
			a:      model.QueueEntry{RatingMin: 800, RatingMax: 900, DurationSeconds: 1800},
			b:      model.QueueEntry{RatingMin: 1000, RatingMax: 1400, DurationSeconds: 1800},
			wantOK: false,
		},
		{
			name:   "duration mismatch",
			a:      model.QueueEntry{RatingMin: 800, RatingMax: 1200, DurationSeconds: 1800},
			b:      model.QueueEntry{RatingMin: 800, RatingMax: 1200, DurationSeconds: 3600},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pairBand(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("pairBand ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("pairBand = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPairBandSymmetric(t *testing.T) {
	a := model.QueueEntry{RatingMin: 800, RatingMax: 1200, DurationSeconds: 1800}
	b := model.QueueEntry{RatingMin: 1000, RatingMax: 1600, DurationSeconds: 1800}
	ab, okAB := pairBand(a, b)
	ba, okBA := pairBand(b, a)
	if okAB != okBA || ab != ba {
		t.Errorf("pairBand not symmetric: (%+v, %v) vs (%+v, %v)", ab, okAB, ba, okBA)
	}
}

func TestUnionTags(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []string
	}{
		{"disjoint", []string{"dp"}, []string{"graphs"}, []string{"dp", "graphs"}},
		{"overlap", []string{"dp", "greedy"}, []string{"greedy", "trees"}, []string{"dp", "greedy", "trees"}},
		{"both empty", nil, nil, []string{}},
		{"one empty", []string{"dp"}, nil, []string{"dp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := unionTags(tt.a, tt.b)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("unionTags = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJoinSplitTags(t *testing.T) {
	joined := joinTags([]string{" dp ", "", "graphs"})
	if joined != "dp,graphs" {
		t.Errorf("joinTags = %q, want %q", joined, "dp,graphs")
	}
	split := splitTags("dp, graphs,,trees")
	want := []string{"dp", "graphs", "trees"}
	if !reflect.DeepEqual(split, want) {
		t.Errorf("splitTags = %v, want %v", split, want)
	}
	if splitTags("") != nil {
		t.Errorf("splitTags(\"\") should be nil")
	}
}
