package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/2dawng/CorsairStream-BE/internal/dto"
	"github.com/2dawng/CorsairStream-BE/pkg/tmdb"
	"github.com/gin-gonic/gin"
)

// MovieHandler proxies movie metadata requests to TMDB. All endpoints are
// pure pass-throughs: query parameters are mapped and the upstream JSON is
// relayed untouched.
type MovieHandler struct {
	tmdb *tmdb.Client
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(client *tmdb.Client) *MovieHandler {
	return &MovieHandler{tmdb: client}
}

// Search searches for movies
// @Summary Search for movies
// @Tags movies
// @Produce json
// @Param query query string true "Search query"
// @Router /movies/search [get]
func (h *MovieHandler) Search(c *gin.Context) {
	params := url.Values{}
	params.Set("query", c.Query("query"))
	params.Set("page", c.DefaultQuery("page", "1"))
	params.Set("include_adult", c.DefaultQuery("include_adult", "false"))
	params.Set("language", c.DefaultQuery("language", "en-US"))
	setOptional(params, c, "with_genres", "year", "sort_by")

	h.proxy(c, "/search/movie", params, "")
}

// ByCategory lists movies in a TMDB category (popular, top_rated, upcoming, ...)
// @Summary List movies by category
// @Tags movies
// @Produce json
// @Param category path string true "TMDB category"
// @Router /movies/{category} [get]
func (h *MovieHandler) ByCategory(c *gin.Context) {
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("page", c.DefaultQuery("page", "1"))
	setOptional(params, c, "with_genres", "year", "sort_by")

	h.proxy(c, "/movie/"+c.Param("category"), params, "")
}

// NowPlaying lists movies now playing in theaters
// @Summary List movies now playing
// @Tags movies
// @Produce json
// @Router /movies/now_playing [get]
func (h *MovieHandler) NowPlaying(c *gin.Context) {
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("page", c.DefaultQuery("page", "1"))

	h.proxy(c, "/movie/now_playing", params, "")
}

// Details returns full movie details with videos, credits and similar movies
// @Summary Get movie details
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Router /movies/movie/{id} [get]
func (h *MovieHandler) Details(c *gin.Context) {
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("append_to_response", "videos,credits,similar")

	h.proxy(c, "/movie/"+c.Param("id"), params, "Movie not found")
}

// Images returns poster and backdrop images for a movie
// @Summary Get movie images
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Router /movies/movie/{id}/images [get]
func (h *MovieHandler) Images(c *gin.Context) {
	params := url.Values{}
	params.Set("language", "en")

	h.proxy(c, "/movie/"+c.Param("id")+"/images", params, "Movie images not found")
}

// Credits returns cast and crew for a movie
// @Summary Get movie credits
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Router /movies/movie/{id}/credits [get]
func (h *MovieHandler) Credits(c *gin.Context) {
	h.proxy(c, "/movie/"+c.Param("id")+"/credits", url.Values{}, "")
}

// Videos returns trailers and teasers for a movie
// @Summary Get movie videos
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Router /movies/movie/{id}/videos [get]
func (h *MovieHandler) Videos(c *gin.Context) {
	h.proxy(c, "/movie/"+c.Param("id")+"/videos", url.Values{}, "")
}

// Similar returns similar movie recommendations from TMDB
// @Summary Get similar movies
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Router /movies/movie/{id}/similar [get]
func (h *MovieHandler) Similar(c *gin.Context) {
	h.proxy(c, "/movie/"+c.Param("id")+"/similar", url.Values{}, "")
}

// MovieWatchProviders returns streaming availability for a movie
// @Summary Get streaming availability for a movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Router /movies/movie/{id}/watch/providers [get]
func (h *MovieHandler) MovieWatchProviders(c *gin.Context) {
	h.proxy(c, "/movie/"+c.Param("id")+"/watch/providers", url.Values{}, "")
}

// WatchProviders lists available streaming providers for a region
// @Summary List streaming providers
// @Tags movies
// @Produce json
// @Param region query string false "Watch region" default(US)
// @Router /movies/watch/providers [get]
func (h *MovieHandler) WatchProviders(c *gin.Context) {
	params := url.Values{}
	params.Set("watch_region", c.DefaultQuery("region", "US"))

	h.proxy(c, "/watch/providers/movie", params, "")
}

// ByProvider lists movies available on a streaming service
// @Summary List movies on a streaming provider
// @Tags movies
// @Produce json
// @Param provider_id path int true "Provider id"
// @Router /movies/discover/streaming/{provider_id} [get]
func (h *MovieHandler) ByProvider(c *gin.Context) {
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("page", c.DefaultQuery("page", "1"))
	params.Set("watch_region", c.DefaultQuery("region", "US"))
	params.Set("with_watch_providers", c.Param("provider_id"))
	params.Set("watch_monetization_types", "flatrate")

	h.proxy(c, "/discover/movie", params, "")
}

// ByGenre lists movies in a genre sorted by popularity
// @Summary List movies by genre
// @Tags movies
// @Produce json
// @Param genre_id path int true "Genre id"
// @Router /movies/discover/genre/{genre_id} [get]
func (h *MovieHandler) ByGenre(c *gin.Context) {
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("page", c.DefaultQuery("page", "1"))
	params.Set("with_genres", c.Param("genre_id"))
	params.Set("sort_by", "popularity.desc")

	h.proxy(c, "/discover/movie", params, "")
}

// Genres lists all movie genres
// @Summary List movie genres
// @Tags movies
// @Produce json
// @Router /movies/genres/movie [get]
func (h *MovieHandler) Genres(c *gin.Context) {
	params := url.Values{}
	params.Set("language", "en-US")

	h.proxy(c, "/genre/movie/list", params, "")
}

// GenreMapping returns a lower-cased genre name to id map
// @Summary Get genre name to id mapping
// @Tags movies
// @Produce json
// @Router /movies/genres/mapping [get]
func (h *MovieHandler) GenreMapping(c *gin.Context) {
	params := url.Values{}
	params.Set("language", "en-US")

	resp, err := h.tmdb.Get(c.Request.Context(), "/genre/movie/list", params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Error fetching genre mapping: " + err.Error(),
		})
		return
	}
	if !resp.OK() {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Error fetching genre mapping: " + string(resp.Body),
		})
		return
	}

	var payload struct {
		Genres []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Error decoding genre mapping: " + err.Error(),
		})
		return
	}

	mapping := make(map[string]int64, len(payload.Genres))
	for _, genre := range payload.Genres {
		mapping[strings.ToLower(genre.Name)] = genre.ID
	}

	c.JSON(http.StatusOK, mapping)
}

// proxy relays a TMDB response to the caller. A non-empty notFoundMessage maps
// an upstream 404 to a local 404; other upstream failures surface as 500 with
// the upstream detail.
func (h *MovieHandler) proxy(c *gin.Context, path string, params url.Values, notFoundMessage string) {
	resp, err := h.tmdb.Get(c.Request.Context(), path, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Error fetching from TMDB: " + err.Error(),
		})
		return
	}

	if resp.StatusCode == http.StatusNotFound && notFoundMessage != "" {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: notFoundMessage,
		})
		return
	}

	if !resp.OK() {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Error fetching from TMDB: " + string(resp.Body),
		})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Body)
}

func setOptional(params url.Values, c *gin.Context, keys ...string) {
	for _, key := range keys {
		if value := c.Query(key); value != "" {
			params.Set(key, value)
		}
	}
}
