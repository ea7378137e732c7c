package handler

import (
	"errors"
	"net/http"

	"github.com/2dawng/CorsairStream-BE/internal/domain"
	"github.com/2dawng/CorsairStream-BE/internal/dto"
	"github.com/2dawng/CorsairStream-BE/internal/repository"
	"github.com/2dawng/CorsairStream-BE/internal/service"
	"github.com/gin-gonic/gin"
)

// HistoryHandler handles watch history requests. Entries are addressed by
// content id under the authenticated user, so a miss is always a 404; there
// is no cross-user case to turn into a 403.
type HistoryHandler struct {
	historyService service.WatchHistoryService
}

// NewHistoryHandler creates a new watch history handler
func NewHistoryHandler(historyService service.WatchHistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// Record creates or refreshes a watch history entry
// @Summary Record that the current user watched a movie
// @Tags history
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.HistoryCreateRequest true "History request"
// @Success 200 {object} dto.HistoryResponse
// @Router /history [post]
func (h *HistoryHandler) Record(c *gin.Context) {
	var req dto.HistoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	user := CurrentUser(c)
	entry, err := h.historyService.Record(c.Request.Context(), user.ID, req.ContentID, req.Completed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, historyResponse(entry))
}

// List returns all watch history entries for the current user
// @Summary List the current user's watch history
// @Tags history
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.HistoryResponse
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	entries, err := h.historyService.List(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	responses := make([]dto.HistoryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, historyResponse(entry))
	}

	c.JSON(http.StatusOK, responses)
}

// Get returns the current user's history entry for a piece of content
// @Summary Get a watch history entry
// @Tags history
// @Security BearerAuth
// @Produce json
// @Param content_id path string true "Content id"
// @Success 200 {object} dto.HistoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /history/{content_id} [get]
func (h *HistoryHandler) Get(c *gin.Context) {
	user := CurrentUser(c)

	entry, err := h.historyService.Get(c.Request.Context(), user.ID, c.Param("content_id"))
	if err != nil {
		h.renderHistoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, historyResponse(entry))
}

// Update sets the completed flag of a history entry
// @Summary Update a watch history entry
// @Tags history
// @Security BearerAuth
// @Produce json
// @Param content_id path string true "Content id"
// @Param completed query bool true "Completed flag"
// @Success 200 {object} dto.HistoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /history/{content_id} [put]
func (h *HistoryHandler) Update(c *gin.Context) {
	completed := c.Query("completed") == "true"
	user := CurrentUser(c)

	entry, err := h.historyService.SetCompleted(c.Request.Context(), user.ID, c.Param("content_id"), completed)
	if err != nil {
		h.renderHistoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, historyResponse(entry))
}

// Delete removes a history entry
// @Summary Delete a watch history entry
// @Tags history
// @Security BearerAuth
// @Produce json
// @Param content_id path string true "Content id"
// @Success 200 {object} dto.HistoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /history/{content_id} [delete]
func (h *HistoryHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	contentID := c.Param("content_id")

	entry, err := h.historyService.Get(c.Request.Context(), user.ID, contentID)
	if err != nil {
		h.renderHistoryError(c, err)
		return
	}

	if err := h.historyService.Remove(c.Request.Context(), user.ID, contentID); err != nil {
		h.renderHistoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, historyResponse(entry))
}

func (h *HistoryHandler) renderHistoryError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: "Watch history not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "Internal server error",
		Message: err.Error(),
	})
}

func historyResponse(entry *domain.WatchHistoryEntry) dto.HistoryResponse {
	return dto.HistoryResponse{
		UserID:    entry.UserID,
		ContentID: entry.ContentID,
		WatchedAt: entry.WatchedAt,
		Completed: entry.Completed,
	}
}
