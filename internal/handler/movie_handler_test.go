package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2dawng/CorsairStream-BE/pkg/tmdb"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upstream captures the request the movie proxy sends to TMDB and answers
// with a scripted response.
type upstream struct {
	server *httptest.Server

	status int
	body   string

	lastPath  string
	lastQuery map[string]string
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()

	u := &upstream{status: http.StatusOK, body: `{"results":[]}`}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.lastPath = r.URL.Path
		u.lastQuery = make(map[string]string)
		for key, values := range r.URL.Query() {
			u.lastQuery[key] = values[0]
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(u.status)
		w.Write([]byte(u.body))
	}))
	t.Cleanup(u.server.Close)

	return u
}

func newMovieRouter(u *upstream) *gin.Engine {
	client := tmdb.NewClient(u.server.URL, "tmdb-token", 5*time.Second)
	h := NewMovieHandler(client)

	router := gin.New()
	movies := router.Group("/api/movies")
	movies.GET("/search", h.Search)
	movies.GET("/now_playing", h.NowPlaying)
	movies.GET("/movie/:id", h.Details)
	movies.GET("/movie/:id/images", h.Images)
	movies.GET("/movie/:id/credits", h.Credits)
	movies.GET("/movie/:id/videos", h.Videos)
	movies.GET("/movie/:id/similar", h.Similar)
	movies.GET("/movie/:id/watch/providers", h.MovieWatchProviders)
	movies.GET("/watch/providers", h.WatchProviders)
	movies.GET("/discover/streaming/:provider_id", h.ByProvider)
	movies.GET("/discover/genre/:genre_id", h.ByGenre)
	movies.GET("/genres/movie", h.Genres)
	movies.GET("/genres/mapping", h.GenreMapping)
	movies.GET("/:category", h.ByCategory)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestMovieHandler_Search(t *testing.T) {
	u := newUpstream(t)
	router := newMovieRouter(u)

	w := get(router, "/api/movies/search?query=matrix&page=2")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[]}`, w.Body.String())

	assert.Equal(t, "/search/movie", u.lastPath)
	assert.Equal(t, "matrix", u.lastQuery["query"])
	assert.Equal(t, "2", u.lastQuery["page"])
	assert.Equal(t, "false", u.lastQuery["include_adult"])
	assert.Equal(t, "en-US", u.lastQuery["language"])
}

func TestMovieHandler_SearchOptionalFilters(t *testing.T) {
	u := newUpstream(t)
	router := newMovieRouter(u)

	get(router, "/api/movies/search?query=matrix&with_genres=28&year=1999")

	assert.Equal(t, "28", u.lastQuery["with_genres"])
	assert.Equal(t, "1999", u.lastQuery["year"])
	_, hasSortBy := u.lastQuery["sort_by"]
	assert.False(t, hasSortBy)
}

func TestMovieHandler_ByCategory(t *testing.T) {
	u := newUpstream(t)
	router := newMovieRouter(u)

	w := get(router, "/api/movies/popular")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/movie/popular", u.lastPath)
	assert.Equal(t, "1", u.lastQuery["page"])
}

func TestMovieHandler_NowPlaying(t *testing.T) {
	u := newUpstream(t)
	router := newMovieRouter(u)

	// The static route wins over the :category parameter.
	w := get(router, "/api/movies/now_playing")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/movie/now_playing", u.lastPath)
}

func TestMovieHandler_Details(t *testing.T) {
	u := newUpstream(t)
	u.body = `{"id":603,"title":"The Matrix"}`
	router := newMovieRouter(u)

	w := get(router, "/api/movies/movie/603")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/movie/603", u.lastPath)
	assert.Equal(t, "videos,credits,similar", u.lastQuery["append_to_response"])
	assert.JSONEq(t, `{"id":603,"title":"The Matrix"}`, w.Body.String())
}

func TestMovieHandler_DetailsNotFound(t *testing.T) {
	u := newUpstream(t)
	u.status = http.StatusNotFound
	u.body = `{"status_message":"not found"}`
	router := newMovieRouter(u)

	w := get(router, "/api/movies/movie/0")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Movie not found", decodeError(t, w).Message)
}

func TestMovieHandler_UpstreamFailure(t *testing.T) {
	u := newUpstream(t)
	u.status = http.StatusServiceUnavailable
	u.body = `{"status_message":"maintenance"}`
	router := newMovieRouter(u)

	w := get(router, "/api/movies/search?query=matrix")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeError(t, w).Message, "maintenance")
}

func TestMovieHandler_Images(t *testing.T) {
	u := newUpstream(t)
	router := newMovieRouter(u)

	get(router, "/api/movies/movie/603/images")

	assert.Equal(t, "/movie/603/images", u.lastPath)
	assert.Equal(t, "en", u.lastQuery["language"])
}

func TestMovieHandler_Subresources(t *testing.T) {
	u := newUpstream(t)
	router := newMovieRouter(u)

	for path, upstreamPath := range map[string]string{
		"/api/movies/movie/603/credits":         "/movie/603/credits",
		"/api/movies/movie/603/videos":          "/movie/603/videos",
		"/api/movies/movie/603/similar":         "/movie/603/similar",
		"/api/movies/movie/603/watch/providers": "/movie/603/watch/providers",
	} {
		w := get(router, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, upstreamPath, u.lastPath, path)
	}
}

func TestMovieHandler_WatchProviders(t *testing.T) {
	u := newUpstream(t)
	router := newMovieRouter(u)

	get(router, "/api/movies/watch/providers?region=GB")

	assert.Equal(t, "/watch/providers/movie", u.lastPath)
	assert.Equal(t, "GB", u.lastQuery["watch_region"])
}

func TestMovieHandler_ByProvider(t *testing.T) {
	u := newUpstream(t)
	router := newMovieRouter(u)

	get(router, "/api/movies/discover/streaming/8")

	assert.Equal(t, "/discover/movie", u.lastPath)
	assert.Equal(t, "8", u.lastQuery["with_watch_providers"])
	assert.Equal(t, "flatrate", u.lastQuery["watch_monetization_types"])
	assert.Equal(t, "US", u.lastQuery["watch_region"])
}

func TestMovieHandler_ByGenre(t *testing.T) {
	u := newUpstream(t)
	router := newMovieRouter(u)

	get(router, "/api/movies/discover/genre/28")

	assert.Equal(t, "/discover/movie", u.lastPath)
	assert.Equal(t, "28", u.lastQuery["with_genres"])
	assert.Equal(t, "popularity.desc", u.lastQuery["sort_by"])
}

func TestMovieHandler_Genres(t *testing.T) {
	u := newUpstream(t)
	u.body = `{"genres":[{"id":28,"name":"Action"}]}`
	router := newMovieRouter(u)

	w := get(router, "/api/movies/genres/movie")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/genre/movie/list", u.lastPath)
	assert.JSONEq(t, `{"genres":[{"id":28,"name":"Action"}]}`, w.Body.String())
}

func TestMovieHandler_GenreMapping(t *testing.T) {
	u := newUpstream(t)
	u.body = `{"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]}`
	router := newMovieRouter(u)

	w := get(router, "/api/movies/genres/mapping")

	assert.Equal(t, http.StatusOK, w.Code)

	var mapping map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mapping))
	assert.Equal(t, int64(28), mapping["action"])
	assert.Equal(t, int64(878), mapping["science fiction"])
}
