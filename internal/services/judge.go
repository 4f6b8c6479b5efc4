package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codeclimb/configs"
	"codeclimb/internal/common"
	"codeclimb/internal/logger"

	"go.uber.org/zap"
)

// Judge0 language ids for the supported languages.
var languageIDs = map[string]int{
	"PYTHON":     71,
	"JAVA":       62,
	"JAVASCRIPT": 63,
}

var languageNames = func() map[int]string {
	names := make(map[int]string, len(languageIDs))
	for name, id := range languageIDs {
		names[id] = name
	}
	return names
}()

// LanguageID resolves a language name to its judge id. The lookup is
// case-insensitive; unknown names report ok=false and must not be sent
// to the judge.
func LanguageID(name string) (int, bool) {
	id, ok := languageIDs[strings.ToUpper(name)]
	return id, ok
}

// LanguageName resolves a judge language id back to its canonical name.
// Unknown ids map to "UNKNOWN", never an error.
func LanguageName(id int) string {
	if name, ok := languageNames[id]; ok {
		return name
	}
	return "UNKNOWN"
}

type BatchSubmission struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output,omitempty"`
}

type JudgeStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Terminal reports whether execution has finished. Judge0 uses 1-2 for
// queued/running and >= 3 for every finished state.
func (s JudgeStatus) Terminal() bool {
	return s.ID >= 3
}

type JudgeResult struct {
	Stdout        *string     `json:"stdout"`
	Stderr        *string     `json:"stderr"`
	CompileOutput *string     `json:"compile_output"`
	Status        JudgeStatus `json:"status"`
	Memory        *float64    `json:"memory"`
	Time          *string     `json:"time"`
}

// JudgeClient submits batches of source code to the external execution
// service and polls for their results.
type JudgeClient interface {
	SubmitBatch(ctx context.Context, submissions []BatchSubmission) ([]string, error)
	PollBatchResults(ctx context.Context, tokens []string) ([]JudgeResult, error)
}

type judge0Client struct {
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewJudge0Client(cfg *configs.Config) JudgeClient {
	return &judge0Client{
		baseURL:      strings.TrimRight(cfg.Judge0URL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		pollInterval: cfg.JudgePollInterval,
		pollTimeout:  cfg.JudgePollTimeout,
	}
}

// SubmitBatch sends one batched request and returns the judge tokens in
// submission order. Failures are not retried; the caller decides.
func (c *judge0Client) SubmitBatch(ctx context.Context, submissions []BatchSubmission) ([]string, error) {
	body, err := json.Marshal(map[string]interface{}{"submissions": submissions})
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch: %w", err)
	}

	endpoint := c.baseURL + "/submissions/batch?base64_encoded=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build batch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("batch submit failed: %v: %w", err, common.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("batch submit returned status %d: %w", resp.StatusCode, common.ErrUpstreamUnavailable)
	}

	var created []struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", common.ErrUpstreamUnavailable)
	}

	tokens := make([]string, len(created))
	for i, entry := range created {
		tokens[i] = entry.Token
	}

	logger.Log.Info("Submitted batch to judge", zap.Int("submissions", len(tokens)))
	return tokens, nil
}

// PollBatchResults blocks until every submission reaches a terminal status,
// then returns the results in token order. The wait is bounded by the
// configured poll timeout and by ctx, so a client disconnect stops the loop.
func (c *judge0Client) PollBatchResults(ctx context.Context, tokens []string) ([]JudgeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	for {
		results, err := c.fetchBatch(ctx, tokens)
		if err != nil {
			return nil, err
		}
		if len(results) != len(tokens) {
			return nil, fmt.Errorf("judge returned %d results for %d submissions: %w",
				len(results), len(tokens), common.ErrUpstreamUnavailable)
		}

		allDone := true
		for _, result := range results {
			if !result.Status.Terminal() {
				allDone = false
				break
			}
		}
		if allDone {
			return results, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("judge results not ready: %v: %w", ctx.Err(), common.ErrUpstreamUnavailable)
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *judge0Client) fetchBatch(ctx context.Context, tokens []string) ([]JudgeResult, error) {
	params := url.Values{}
	params.Set("tokens", strings.Join(tokens, ","))
	params.Set("base64_encoded", "false")

	endpoint := c.baseURL + "/submissions/batch?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build poll request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("batch poll failed: %v: %w", err, common.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("batch poll returned status %d: %w", resp.StatusCode, common.ErrUpstreamUnavailable)
	}

	var payload struct {
		Submissions []JudgeResult `json:"submissions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode poll response: %w", common.ErrUpstreamUnavailable)
	}

	return payload.Submissions, nil
}
