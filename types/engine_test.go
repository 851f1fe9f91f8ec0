package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPollResultKeepsProblemOrderZero(t *testing.T) {
	data, err := json.Marshal(PollResult{
		MatchID:      7,
		Event:        "solve",
		PlayerID:     3,
		ProblemOrder: 0,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"problem_order":0`) {
		t.Errorf("problem_order 0 dropped from solve event: %s", data)
	}
}
