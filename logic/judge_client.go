package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cpduel/model"
)

const (
	judgeDefaultBaseURL = "https://codeforces.com/api"
	judgeRequestTimeout = 10 * time.Second
	judgeMaxSubmissions = 30

	VerdictAccepted = "OK"
)

// JudgeSubmission 评测平台的一次提交
type JudgeSubmission struct {
	SubmissionID int64  `json:"submission_id"`
	ProblemID    string `json:"problem_id"`
	Verdict      string `json:"verdict"`
	CreationTime int64  `json:"creation_time"`
}

// QualifiesFor 只认开赛之后的AC，赛前过的同题不算
func (s JudgeSubmission) QualifiesFor(problemID string, startTime int64) bool {
	return s.ProblemID == problemID &&
		s.Verdict == VerdictAccepted &&
		s.CreationTime >= startTime
}

func isPendingVerdict(verdict string) bool {
	if verdict == "" {
		return true
	}
	switch verdict {
	case "TESTING", "SUBMITTED":
		return true
	default:
		return false
	}
}

// JudgeClient 评测平台HTTP适配器，超时固定兜底
type JudgeClient struct {
	baseURL        string
	client         *http.Client
	maxSubmissions int
}

func NewJudgeClient(baseURL string, timeout time.Duration, maxSubmissions int) *JudgeClient {
	if baseURL == "" {
		baseURL = judgeDefaultBaseURL
	}
	if timeout <= 0 {
		timeout = judgeRequestTimeout
	}
	if maxSubmissions <= 0 {
		maxSubmissions = judgeMaxSubmissions
	}
	return &JudgeClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		client:         &http.Client{Timeout: timeout},
		maxSubmissions: maxSubmissions,
	}
}

type judgeStatusResponse struct {
	Status  string            `json:"status"`
	Result  []judgeSubmission `json:"result"`
	Comment string            `json:"comment"`
}

type judgeSubmission struct {
	ID                  int64        `json:"id"`
	Verdict             string       `json:"verdict"`
	CreationTimeSeconds int64        `json:"creationTimeSeconds"`
	Problem             judgeProblem `json:"problem"`
}

type judgeProblem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Rating    int      `json:"rating"`
	Tags      []string `json:"tags"`
}

func (p judgeProblem) id() string {
	if p.ContestID <= 0 || p.Index == "" {
		return ""
	}
	return fmt.Sprintf("%d%s", p.ContestID, p.Index)
}

// FetchSubmissions 拉取指定账号最近的提交
func (c *JudgeClient) FetchSubmissions(ctx context.Context, handle string) ([]JudgeSubmission, error) {
	url := fmt.Sprintf("%s/user.status?handle=%s&from=1&count=%d", c.baseURL, handle, c.maxSubmissions)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP状态码异常:%d", resp.StatusCode)
	}
	var data judgeStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	if data.Status != "OK" {
		if data.Comment != "" {
			return nil, fmt.Errorf("API返回失败:%s", data.Comment)
		}
		return nil, fmt.Errorf("API返回失败")
	}
	items := make([]JudgeSubmission, 0, len(data.Result))
	for _, item := range data.Result {
		items = append(items, JudgeSubmission{
			SubmissionID: item.ID,
			ProblemID:    item.Problem.id(),
			Verdict:      item.Verdict,
			CreationTime: item.CreationTimeSeconds,
		})
		if len(items) >= c.maxSubmissions {
			break
		}
	}
	return items, nil
}

type judgeCatalogResponse struct {
	Status string `json:"status"`
	Result struct {
		Problems []judgeProblem `json:"problems"`
	} `json:"result"`
	Comment string `json:"comment"`
}

// FetchProblemCatalog 拉取全量题库
func (c *JudgeClient) FetchProblemCatalog(ctx context.Context) ([]model.CodeforcesProblem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/problemset.problems", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP状态码异常:%d", resp.StatusCode)
	}
	var data judgeCatalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	if data.Status != "OK" {
		if data.Comment != "" {
			return nil, fmt.Errorf("API返回失败:%s", data.Comment)
		}
		return nil, fmt.Errorf("API返回失败")
	}
	items := make([]model.CodeforcesProblem, 0, len(data.Result.Problems))
	for _, p := range data.Result.Problems {
		id := p.id()
		if id == "" {
			continue
		}
		items = append(items, model.CodeforcesProblem{
			ID:         id,
			Url:        fmt.Sprintf("https://codeforces.com/problemset/problem/%d/%s", p.ContestID, p.Index),
			Difficulty: p.Rating,
			Tags:       strings.Join(p.Tags, ","),
		})
	}
	return items, nil
}
