package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"codeclimb/internal/common"
	"codeclimb/internal/logger"
	"codeclimb/internal/middlewares"
	"codeclimb/internal/models"
	"codeclimb/internal/repositories"
	"codeclimb/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExecutionHandler struct {
	judge          services.JudgeClient
	submissionRepo repositories.SubmissionRepository
}

func NewExecutionHandler(judge services.JudgeClient, submissionRepo repositories.SubmissionRepository) *ExecutionHandler {
	return &ExecutionHandler{
		judge:          judge,
		submissionRepo: submissionRepo,
	}
}

// ExecuteCode runs the submitted source against the provided testcases via
// the external judge, grades the outputs and persists the submission with
// its per-case results.
func (h *ExecutionHandler) ExecuteCode(c *gin.Context) {
	var req models.ExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	user, ok := middlewares.CurrentUser(c)
	if !ok {
		common.RespondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx := c.Request.Context()

	batch := make([]services.BatchSubmission, len(req.Stdin))
	for i, input := range req.Stdin {
		batch[i] = services.BatchSubmission{
			SourceCode: req.SourceCode,
			LanguageID: req.LanguageID,
			Stdin:      input,
		}
	}

	tokens, err := h.judge.SubmitBatch(ctx, batch)
	if err != nil {
		logger.Log.Error("Failed to submit batch to judge",
			zap.String("user_id", user.ID),
			zap.String("problem_id", req.ProblemID),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	results, err := h.judge.PollBatchResults(ctx, tokens)
	if err != nil {
		logger.Log.Error("Failed to poll judge results",
			zap.String("user_id", user.ID),
			zap.String("problem_id", req.ProblemID),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	if len(results) != len(batch) {
		logger.Log.Error("Judge returned unexpected result count",
			zap.Int("submitted", len(batch)),
			zap.Int("received", len(results)),
			zap.String("problem_id", req.ProblemID))
		common.RespondError(c, fmt.Errorf("judge returned %d results for %d submissions: %w",
			len(results), len(batch), common.ErrUpstreamUnavailable))
		return
	}

	passed := services.GradeBatch(results, req.ExpectedOutputs)
	status := services.Verdict(passed)

	submission, caseResults := buildSubmissionRecord(user.ID, &req, results, passed, status)

	stored, err := h.submissionRepo.CreateWithResults(ctx, submission, caseResults, status == models.StatusAccepted)
	if err != nil {
		logger.Log.Error("Failed to persist execution results",
			zap.String("user_id", user.ID),
			zap.String("problem_id", req.ProblemID),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Code executed successfully",
		"submission": stored,
	})
}

// buildSubmissionRecord flattens judge results into the summary row (JSON
// parallel arrays, optional columns only when any case produced a value)
// and one TestCaseResult per case.
func buildSubmissionRecord(
	userID string,
	req *models.ExecutionRequest,
	results []services.JudgeResult,
	passed []bool,
	status string,
) (*models.Submission, []models.TestCaseResult) {
	stdouts := make([]string, len(results))
	stderrs := make([]string, len(results))
	compileOutputs := make([]string, len(results))
	memories := make([]string, len(results))
	times := make([]string, len(results))

	caseResults := make([]models.TestCaseResult, len(results))
	for i, result := range results {
		stdouts[i] = derefString(result.Stdout)
		stderrs[i] = derefString(result.Stderr)
		compileOutputs[i] = derefString(result.CompileOutput)
		memories[i] = formatMemory(result.Memory)
		times[i] = formatTime(result.Time)

		caseResults[i] = models.TestCaseResult{
			TestCase:      i + 1,
			Passed:        passed[i],
			Stdout:        stdouts[i],
			Expected:      req.ExpectedOutputs[i],
			Stderr:        optionalString(stderrs[i]),
			CompileOutput: optionalString(compileOutputs[i]),
			Status:        result.Status.Description,
			Memory:        optionalString(memories[i]),
			Time:          optionalString(times[i]),
		}
	}

	submission := &models.Submission{
		UserID:        userID,
		ProblemID:     req.ProblemID,
		SourceCode:    req.SourceCode,
		Language:      services.LanguageName(req.LanguageID),
		Stdin:         strings.Join(req.Stdin, "\n"),
		Stdout:        mustMarshal(stdouts),
		Stderr:        optionalJSONArray(stderrs),
		CompileOutput: optionalJSONArray(compileOutputs),
		Status:        status,
		Memory:        optionalJSONArray(memories),
		Time:          optionalJSONArray(times),
	}

	return submission, caseResults
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// optionalJSONArray serializes the slice only when at least one element is
// non-empty, keeping the column NULL otherwise.
func optionalJSONArray(values []string) *string {
	any := false
	for _, v := range values {
		if v != "" {
			any = true
			break
		}
	}
	if !any {
		return nil
	}
	encoded := mustMarshal(values)
	return &encoded
}

func mustMarshal(values []string) string {
	data, err := json.Marshal(values)
	if err != nil {
		// A []string cannot fail to marshal.
		return "[]"
	}
	return string(data)
}

func formatMemory(memory *float64) string {
	if memory == nil {
		return ""
	}
	return strconv.FormatFloat(*memory, 'f', -1, 64) + " KB"
}

func formatTime(t *string) string {
	if t == nil || *t == "" {
		return ""
	}
	return *t + " s"
}

func (h *ExecutionHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.POST("/execute", auth, h.ExecuteCode)
}
