package handlers

import (
	"net/http"

	"codeclimb/internal/common"
	"codeclimb/internal/logger"
	"codeclimb/internal/middlewares"
	"codeclimb/internal/models"
	"codeclimb/internal/repositories"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PlaylistHandler struct {
	playlistRepo repositories.PlaylistRepository
}

func NewPlaylistHandler(playlistRepo repositories.PlaylistRepository) *PlaylistHandler {
	return &PlaylistHandler{playlistRepo: playlistRepo}
}

func (h *PlaylistHandler) GetAllPlaylists(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		common.RespondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlists, err := h.playlistRepo.GetPlaylistsByUser(c.Request.Context(), user.ID)
	if err != nil {
		logger.Log.Error("Failed to get playlists",
			zap.String("user_id", user.ID),
			zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error fetching playlists")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Playlists fetched successfully",
		"count":     len(playlists),
		"playlists": playlists,
	})
}

func (h *PlaylistHandler) GetPlaylistByID(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		common.RespondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlistID := c.Param("playlistId")

	playlist, err := h.playlistRepo.GetPlaylistByID(c.Request.Context(), user.ID, playlistID)
	if err != nil {
		logger.Log.Error("Failed to get playlist",
			zap.String("playlist_id", playlistID),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Playlist fetched successfully",
		"playlist": playlist,
	})
}

func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		common.RespondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	playlist := &models.Playlist{
		Name:        req.Name,
		Description: req.Description,
		UserID:      user.ID,
	}
	if err := h.playlistRepo.CreatePlaylist(c.Request.Context(), playlist); err != nil {
		logger.Log.Error("Failed to create playlist",
			zap.String("user_id", user.ID),
			zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error creating playlist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Playlist created successfully",
		"playlist": playlist,
	})
}

func (h *PlaylistHandler) UpdatePlaylist(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		common.RespondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlistID := c.Param("playlistId")

	var req models.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	playlist := &models.Playlist{
		ID:          playlistID,
		Name:        req.Name,
		Description: req.Description,
		UserID:      user.ID,
	}
	if err := h.playlistRepo.UpdatePlaylist(c.Request.Context(), playlist); err != nil {
		logger.Log.Error("Failed to update playlist",
			zap.String("playlist_id", playlistID),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Playlist updated successfully",
		"playlist": playlist,
	})
}

func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		common.RespondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlistID := c.Param("playlistId")

	if err := h.playlistRepo.DeletePlaylist(c.Request.Context(), user.ID, playlistID); err != nil {
		logger.Log.Error("Failed to delete playlist",
			zap.String("playlist_id", playlistID),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Playlist deleted successfully",
	})
}

func (h *PlaylistHandler) AddProblemsToPlaylist(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		common.RespondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlistID := c.Param("playlistId")

	var req models.PlaylistProblemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	added, err := h.playlistRepo.AddProblems(c.Request.Context(), user.ID, playlistID, req.ProblemIDs)
	if err != nil {
		logger.Log.Error("Failed to add problems to playlist",
			zap.String("playlist_id", playlistID),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"message":        "Problems added to playlist successfully",
		"problems_added": added,
	})
}

func (h *PlaylistHandler) RemoveProblemsFromPlaylist(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		common.RespondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlistID := c.Param("playlistId")

	var req models.PlaylistProblemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	removed, err := h.playlistRepo.RemoveProblems(c.Request.Context(), user.ID, playlistID, req.ProblemIDs)
	if err != nil {
		logger.Log.Error("Failed to remove problems from playlist",
			zap.String("playlist_id", playlistID),
			zap.Error(err))
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "Problems removed from playlist successfully",
		"problems_removed": removed,
	})
}

func (h *PlaylistHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	playlistGroup := rg.Group("/playlists")
	playlistGroup.Use(auth)
	{
		playlistGroup.GET("", h.GetAllPlaylists)
		playlistGroup.GET("/:playlistId", h.GetPlaylistByID)
		playlistGroup.POST("", h.CreatePlaylist)
		playlistGroup.PUT("/:playlistId", h.UpdatePlaylist)
		playlistGroup.DELETE("/:playlistId", h.DeletePlaylist)
		playlistGroup.POST("/:playlistId/problems", h.AddProblemsToPlaylist)
		playlistGroup.DELETE("/:playlistId/problems", h.RemoveProblemsFromPlaylist)
	}
}
