package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/antoinebou12/horaire-ets/internal/config"
	"github.com/antoinebou12/horaire-ets/internal/course"
	"github.com/antoinebou12/horaire-ets/internal/search"

	"github.com/antoinebou12/horaire-ets/pkg/version"
)

type handlers struct {
	cfg *config.Config
	svc *search.Service
}

func newHandlers(cfg *config.Config, svc *search.Service) *handlers {
	return &handlers{cfg: cfg, svc: svc}
}

// health reports readiness and catalogue size.
func (h *handlers) health(c *gin.Context) {
	snap := h.svc.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"ready":   h.svc.Ready(),
		"courses": snap.Size(),
		"version": version.Short(),
	})
}

// listCourses returns the raw catalogue, optionally filtered by
// programmes.
func (h *handlers) listCourses(c *gin.Context) {
	if !h.svc.Ready() {
		c.JSON(http.StatusOK, []course.Course{})
		return
	}
	courses := h.svc.Snapshot().Courses
	if opts := parseOptions(c); !opts.IsZero() {
		courses = search.FilterByOptions(courses, opts)
	}
	c.JSON(http.StatusOK, courses)
}

// searchCourses handles GET /search.
//
// Query parameters: query (required), algorithm (bm25|fuzzy|hybrid,
// default hybrid), limit (clamped to [1, max]), maxDistance, programmes
// (comma-separated), minCredits, maxCredits. An unready or empty corpus
// answers 200 with an empty array.
func (h *handlers) searchCourses(c *gin.Context) {
	query := firstQueryValue(c, "query", "q")
	if strings.TrimSpace(query) == "" || !h.svc.Ready() {
		c.JSON(http.StatusOK, []search.Hit{})
		return
	}

	limit := clampLimit(parseIntDefault(c.Query("limit"), h.cfg.Search.DefaultLimit),
		h.cfg.Search.MaxSearchLimit)
	maxDistance := parseIntPtr(c.Query("maxDistance"))
	opts := parseOptions(c)
	algorithm := search.ParseAlgorithm(c.Query("algorithm"))

	hits := h.svc.SearchWith(algorithm, query, limit, maxDistance, opts)
	c.JSON(http.StatusOK, hits)
}

// autocompleteCourses handles GET /autocomplete.
func (h *handlers) autocompleteCourses(c *gin.Context) {
	query := firstQueryValue(c, "query", "q")
	if strings.TrimSpace(query) == "" || !h.svc.Ready() {
		c.JSON(http.StatusOK, []search.AutocompleteHit{})
		return
	}

	limit := clampLimit(parseIntDefault(c.Query("limit"), 10),
		h.cfg.Search.MaxAutocompleteLimit)
	opts := parseOptions(c)

	hits := h.svc.Autocomplete(query, limit, opts)
	c.JSON(http.StatusOK, hits)
}

// parseOptions builds filter options from programmes/minCredits/maxCredits
// parameters. Unknown programme tags pass through; the filter matches
// nothing for them.
func parseOptions(c *gin.Context) *search.Options {
	opts := &search.Options{}

	if raw := c.Query("programmes"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				opts.Programmes = append(opts.Programmes, course.ParseProgramme(tag))
			}
		}
	}
	opts.MinCredits = parseIntPtr(c.Query("minCredits"))
	opts.MaxCredits = parseIntPtr(c.Query("maxCredits"))

	if opts.IsZero() {
		return nil
	}
	return opts
}

func firstQueryValue(c *gin.Context, keys ...string) string {
	for _, key := range keys {
		if v := c.Query(key); v != "" {
			return v
		}
	}
	return ""
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func parseIntPtr(raw string) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func clampLimit(limit, max int) int {
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}
