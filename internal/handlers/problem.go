package handlers

import (
	"context"
	"fmt"
	"net/http"

	"codeclimb/internal/common"
	"codeclimb/internal/logger"
	"codeclimb/internal/middlewares"
	"codeclimb/internal/models"
	"codeclimb/internal/repositories"
	"codeclimb/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Judge0 status id for an accepted run.
const statusIDAccepted = 3

type ProblemHandler struct {
	problemRepo repositories.ProblemRepository
	judge       services.JudgeClient
}

func NewProblemHandler(problemRepo repositories.ProblemRepository, judge services.JudgeClient) *ProblemHandler {
	return &ProblemHandler{
		problemRepo: problemRepo,
		judge:       judge,
	}
}

// CreateProblem stores a new problem after verifying every reference
// solution passes every testcase on the judge. Nothing is written when
// verification fails.
func (h *ProblemHandler) CreateProblem(c *gin.Context) {
	var req models.ProblemRequest
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

	if err := h.verifyReferenceSolutions(c.Request.Context(), req.Testcases, req.ReferenceSolutions); err != nil {
		logger.Log.Error("Reference solution verification failed",
			zap.String("title", req.Title),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	problem := problemFromRequest(&req)
	problem.CreatedBy = user.ID

	if err := h.problemRepo.CreateProblem(c.Request.Context(), problem); err != nil {
		logger.Log.Error("Failed to create problem", zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error creating problem")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "New problem created successfully",
		"data":    problem,
	})
}

func (h *ProblemHandler) GetProblems(c *gin.Context) {
	problems, err := h.problemRepo.GetProblems(c.Request.Context())
	if err != nil {
		logger.Log.Error("Failed to get problems", zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error fetching problems")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Problems fetched successfully",
		"problems": problems,
	})
}

func (h *ProblemHandler) GetProblemByID(c *gin.Context) {
	problemID := c.Param("id")

	problem, err := h.problemRepo.GetProblemByID(c.Request.Context(), problemID)
	if err != nil {
		logger.Log.Error("Failed to get problem",
			zap.String("problem_id", problemID),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Problem fetched successfully",
		"data":    problem,
	})
}

// UpdateProblem re-verifies all reference solutions before touching the
// stored row; a failing solution leaves the problem unmodified.
func (h *ProblemHandler) UpdateProblem(c *gin.Context) {
	problemID := c.Param("id")

	existing, err := h.problemRepo.GetProblemByID(c.Request.Context(), problemID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	var req models.ProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.verifyReferenceSolutions(c.Request.Context(), req.Testcases, req.ReferenceSolutions); err != nil {
		logger.Log.Error("Reference solution verification failed",
			zap.String("problem_id", problemID),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	problem := problemFromRequest(&req)
	problem.ID = existing.ID
	problem.CreatedBy = existing.CreatedBy

	if err := h.problemRepo.UpdateProblem(c.Request.Context(), problem); err != nil {
		logger.Log.Error("Failed to update problem",
			zap.String("problem_id", problemID),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Problem updated successfully",
		"data":    problem,
	})
}

func (h *ProblemHandler) DeleteProblem(c *gin.Context) {
	problemID := c.Param("id")

	if err := h.problemRepo.DeleteProblem(c.Request.Context(), problemID); err != nil {
		logger.Log.Error("Failed to delete problem",
			zap.String("problem_id", problemID),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Problem deleted successfully",
	})
}

func (h *ProblemHandler) GetSolvedProblems(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		common.RespondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	problems, err := h.problemRepo.GetProblemsSolvedByUser(c.Request.Context(), user.ID)
	if err != nil {
		logger.Log.Error("Failed to get solved problems",
			zap.String("user_id", user.ID),
			zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error fetching solved problems")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Solved problems fetched successfully",
		"problems": problems,
	})
}

// verifyReferenceSolutions round-trips every (language, solution) pair
// through the judge against all testcases and requires an Accepted status
// on each one.
func (h *ProblemHandler) verifyReferenceSolutions(ctx context.Context, testcases models.TestCaseList, referenceSolutions models.StringMap) error {
	for language, solutionCode := range referenceSolutions {
		languageID, ok := services.LanguageID(language)
		if !ok {
			return fmt.Errorf("invalid language %s: %w", language, common.ErrUnsupportedLanguage)
		}

		batch := make([]services.BatchSubmission, len(testcases))
		for i, tc := range testcases {
			batch[i] = services.BatchSubmission{
				SourceCode:     solutionCode,
				LanguageID:     languageID,
				Stdin:          tc.Input,
				ExpectedOutput: tc.Output,
			}
		}

		tokens, err := h.judge.SubmitBatch(ctx, batch)
		if err != nil {
			return err
		}

		results, err := h.judge.PollBatchResults(ctx, tokens)
		if err != nil {
			return err
		}

		for i, result := range results {
			logger.Log.Info("Reference solution testcase result",
				zap.String("language", language),
				zap.Int("testcase", i+1),
				zap.String("status", result.Status.Description))

			if result.Status.ID != statusIDAccepted {
				return fmt.Errorf("testcase %d failed for language %s: %w",
					i+1, language, common.ErrReferenceSolutionFailed)
			}
		}
	}
	return nil
}

func problemFromRequest(req *models.ProblemRequest) *models.Problem {
	return &models.Problem{
		Title:              req.Title,
		Description:        req.Description,
		Difficulty:         req.Difficulty,
		Tags:               req.Tags,
		Examples:           req.Examples,
		Constraints:        req.Constraints,
		Testcases:          req.Testcases,
		CodeSnippets:       req.CodeSnippets,
		ReferenceSolutions: req.ReferenceSolutions,
	}
}

func (h *ProblemHandler) RegisterRoutes(rg *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	problemGroup := rg.Group("/problems")
	problemGroup.Use(auth)
	{
		problemGroup.GET("", h.GetProblems)
		problemGroup.GET("/solved", h.GetSolvedProblems)
		problemGroup.GET("/:id", h.GetProblemByID)
		problemGroup.POST("", admin, h.CreateProblem)
		problemGroup.PUT("/:id", admin, h.UpdateProblem)
		problemGroup.DELETE("/:id", admin, h.DeleteProblem)
	}
}
