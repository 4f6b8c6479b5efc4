package handlers

import (
	"net/http"

	"codeclimb/internal/common"
	"codeclimb/internal/logger"
	"codeclimb/internal/middlewares"
	"codeclimb/internal/repositories"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubmissionHandler struct {
	submissionRepo repositories.SubmissionRepository
}

func NewSubmissionHandler(submissionRepo repositories.SubmissionRepository) *SubmissionHandler {
	return &SubmissionHandler{submissionRepo: submissionRepo}
}

// GetAllSubmissions lists every submission of the current user.
func (h *SubmissionHandler) GetAllSubmissions(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		common.RespondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	submissions, err := h.submissionRepo.GetSubmissionsByUser(c.Request.Context(), user.ID)
	if err != nil {
		logger.Log.Error("Failed to get submissions",
			zap.String("user_id", user.ID),
			zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error fetching submissions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Submissions fetched successfully",
		"count":       len(submissions),
		"submissions": submissions,
	})
}

// GetSubmissionsForProblem lists the current user's submissions for one problem.
func (h *SubmissionHandler) GetSubmissionsForProblem(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		common.RespondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	problemID := c.Param("problemId")

	submissions, err := h.submissionRepo.GetSubmissionsByUserAndProblem(c.Request.Context(), user.ID, problemID)
	if err != nil {
		logger.Log.Error("Failed to get submissions for problem",
			zap.String("user_id", user.ID),
			zap.String("problem_id", problemID),
			zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error fetching submissions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Submissions fetched successfully",
		"count":       len(submissions),
		"submissions": submissions,
	})
}

// GetSubmissionCountForProblem counts submissions across all users.
func (h *SubmissionHandler) GetSubmissionCountForProblem(c *gin.Context) {
	problemID := c.Param("problemId")

	count, err := h.submissionRepo.CountSubmissionsForProblem(c.Request.Context(), problemID)
	if err != nil {
		logger.Log.Error("Failed to count submissions",
			zap.String("problem_id", problemID),
			zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error fetching submission count")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Submission count fetched successfully",
		"count":   count,
	})
}

func (h *SubmissionHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	submissionGroup := rg.Group("/submissions")
	submissionGroup.Use(auth)
	{
		submissionGroup.GET("", h.GetAllSubmissions)
		submissionGroup.GET("/problem/:problemId", h.GetSubmissionsForProblem)
		submissionGroup.GET("/problem/:problemId/count", h.GetSubmissionCountForProblem)
	}
}
