package logic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestQualifiesFor(t *testing.T) {
	tests := []struct {
		name       string
		submission JudgeSubmission
		problemID  string
		startTime  int64
		want       bool
	}{
		{
			name:       "accepted after start",
			submission: JudgeSubmission{ProblemID: "1700A", Verdict: "OK", CreationTime: 200},
			problemID:  "1700A",
			startTime:  100,
			want:       true,
		},
		{
			name:       "accepted at exact start",
			submission: JudgeSubmission{ProblemID: "1700A", Verdict: "OK", CreationTime: 100},
			problemID:  "1700A",
			startTime:  100,
			want:       true,
		},
		{
			name:       "accepted before start",
			submission: JudgeSubmission{ProblemID: "1700A", Verdict: "OK", CreationTime: 50},
			problemID:  "1700A",
			startTime:  100,
			want:       false,
		},
		{
			name:       "wrong answer",
			submission: JudgeSubmission{ProblemID: "1700A", Verdict: "WRONG_ANSWER", CreationTime: 200},
			problemID:  "1700A",
			startTime:  100,
			want:       false,
		},
		{
			name:       "different problem",
			submission: JudgeSubmission{ProblemID: "1700B", Verdict: "OK", CreationTime: 200},
			problemID:  "1700A",
			startTime:  100,
			want:       false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.submission.QualifiesFor(tt.problemID, tt.startTime); got != tt.want {
				t.Errorf("QualifiesFor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPendingVerdict(t *testing.T) {
	for _, verdict := range []string{"", "TESTING", "SUBMITTED"} {
		if !isPendingVerdict(verdict) {
			t.Errorf("isPendingVerdict(%q) = false, want true", verdict)
		}
	}
	for _, verdict := range []string{"OK", "WRONG_ANSWER", "TIME_LIMIT_EXCEEDED"} {
		if isPendingVerdict(verdict) {
			t.Errorf("isPendingVerdict(%q) = true, want false", verdict)
		}
	}
}

func TestFetchSubmissions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user.status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("handle"); got != "tourist" {
			t.Errorf("handle = %q, want tourist", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"result": [
				{"id": 11, "verdict": "OK", "creationTimeSeconds": 500,
				 "problem": {"contestId": 1700, "index": "A", "rating": 900}},
				{"id": 12, "verdict": "WRONG_ANSWER", "creationTimeSeconds": 400,
				 "problem": {"contestId": 1700, "index": "B", "rating": 1100}}
			]
		}`))
	}))
	defer server.Close()

	client := NewJudgeClient(server.URL, time.Second, 30)
	submissions, err := client.FetchSubmissions(context.Background(), "tourist")
	if err != nil {
		t.Fatalf("FetchSubmissions: %v", err)
	}
	if len(submissions) != 2 {
		t.Fatalf("got %d submissions, want 2", len(submissions))
	}
	if submissions[0].SubmissionID != 11 || submissions[0].ProblemID != "1700A" || submissions[0].Verdict != "OK" {
		t.Errorf("first submission = %+v", submissions[0])
	}
	if submissions[1].ProblemID != "1700B" {
		t.Errorf("second problem id = %q, want 1700B", submissions[1].ProblemID)
	}
}

func TestFetchSubmissionsAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "FAILED", "comment": "handle: User not found"}`))
	}))
	defer server.Close()

	client := NewJudgeClient(server.URL, time.Second, 30)
	if _, err := client.FetchSubmissions(context.Background(), "nobody"); err == nil {
		t.Errorf("expected error for FAILED status")
	}
}

func TestFetchProblemCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/problemset.problems" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"result": {
				"problems": [
					{"contestId": 1700, "index": "A", "rating": 900, "tags": ["implementation", "math"]},
					{"contestId": 0, "index": "", "rating": 0, "tags": []}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewJudgeClient(server.URL, time.Second, 30)
	problems, err := client.FetchProblemCatalog(context.Background())
	if err != nil {
		t.Fatalf("FetchProblemCatalog: %v", err)
	}
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1 (invalid entries skipped)", len(problems))
	}
	p := problems[0]
	if p.ID != "1700A" {
		t.Errorf("problem id = %q, want 1700A", p.ID)
	}
	if p.Difficulty != 900 {
		t.Errorf("difficulty = %d, want 900", p.Difficulty)
	}
	if p.Tags != "implementation,math" {
		t.Errorf("tags = %q, want %q", p.Tags, "implementation,math")
	}
	if p.Url != "https://codeforces.com/problemset/problem/1700/A" {
		t.Errorf("url = %q", p.Url)
	}
}
