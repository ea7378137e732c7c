package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/2dawng/CorsairStream-BE/internal/domain"
	"github.com/2dawng/CorsairStream-BE/internal/dto"
	"github.com/2dawng/CorsairStream-BE/internal/repository"
	"github.com/2dawng/CorsairStream-BE/internal/service"
	"github.com/gin-gonic/gin"
)

// WatchlistHandler handles watchlist requests
type WatchlistHandler struct {
	watchlistService service.WatchlistService
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(watchlistService service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
	}
}

// Create adds a movie to the current user's watchlist
// @Summary Add a movie to the watchlist
// @Tags watchlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.WatchlistCreateRequest true "Watchlist request"
// @Success 201 {object} dto.WatchlistResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) Create(c *gin.Context) {
	var req dto.WatchlistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	user := CurrentUser(c)
	item, err := h.watchlistService.Add(c.Request.Context(), user.ID, req.ContentID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateWatchlistItem) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad request",
				Message: "Movie already in watchlist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, watchlistResponse(item))
}

// List returns all watchlist items for the current user
// @Summary List the current user's watchlist
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.WatchlistResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	items, err := h.watchlistService.List(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	responses := make([]dto.WatchlistResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, watchlistResponse(item))
	}

	c.JSON(http.StatusOK, responses)
}

// Get returns a single watchlist item after checking ownership. A missing id
// is 404; an id owned by another user is 403.
// @Summary Get a watchlist item
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Param id path int true "Watchlist item id"
// @Success 200 {object} dto.WatchlistResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /watchlist/{id} [get]
func (h *WatchlistHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: "Invalid watchlist id",
		})
		return
	}

	user := CurrentUser(c)
	item, err := h.watchlistService.GetOwned(c.Request.Context(), id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "Not found",
				Message: "Watchlist not found",
			})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, dto.ErrorResponse{
				Error:   "Forbidden",
				Message: "Not authorized to access this watchlist",
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal server error",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, watchlistResponse(item))
}

// Delete removes a movie from the current user's watchlist by content id
// @Summary Remove a movie from the watchlist
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Param content_id path string true "Content id"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /watchlist/{content_id} [delete]
func (h *WatchlistHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	contentID := c.Param("content_id")

	if err := h.watchlistService.Remove(c.Request.Context(), user.ID, contentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "Not found",
				Message: "Watchlist item not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Watchlist item deleted successfully",
	})
}

func watchlistResponse(item *domain.WatchlistItem) dto.WatchlistResponse {
	return dto.WatchlistResponse{
		ID:        item.ID,
		UserID:    item.UserID,
		ContentID: item.ContentID,
		AddedAt:   item.AddedAt,
	}
}
