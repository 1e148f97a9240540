package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antoinebou12/horaire-ets/internal/course"
)

func TestScraper_Fetch(t *testing.T) {
	catalogues := map[string][]course.Course{
		"LOG": {
			{Code: "LOG100", Title: "LOG100 - Introduction à la programmation"},
			{Code: "LOG200", Title: "LOG200 - Programmation avancée"},
		},
		"MAT": {
			{Code: "MAT380", Title: "MAT380 - Algèbre linéaire"},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		programme := r.URL.Query().Get("programme")
		courses, ok := catalogues[programme]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(courses)
	}))
	defer srv.Close()

	scraper := NewScraper(ScraperConfig{
		BaseURL:    srv.URL,
		Programmes: []course.Programme{course.ProgrammeLOG, course.ProgrammeMAT},
		Workers:    2,
	}, nil)

	courses, err := scraper.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 3)

	// Merged output is ordered by code.
	assert.Equal(t, "LOG100", courses[0].Code)
	assert.Equal(t, "LOG200", courses[1].Code)
	assert.Equal(t, "MAT380", courses[2].Code)
}

func TestScraper_PartialFailureStillPublishes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("programme") != "LOG" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode([]course.Course{{Code: "LOG100"}})
	}))
	defer srv.Close()

	scraper := NewScraper(ScraperConfig{
		BaseURL:    srv.URL,
		Programmes: []course.Programme{course.ProgrammeLOG, course.ProgrammeMAT},
	}, nil)

	courses, err := scraper.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "LOG100", courses[0].Code)
}

func TestScraper_AllFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	scraper := NewScraper(ScraperConfig{
		BaseURL:    srv.URL,
		Programmes: []course.Programme{course.ProgrammeLOG},
	}, nil)

	_, err := scraper.Fetch(context.Background())
	assert.Error(t, err)
}

func TestScraper_NoBaseURL(t *testing.T) {
	scraper := NewScraper(ScraperConfig{}, nil)
	_, err := scraper.Fetch(context.Background())
	assert.Error(t, err)
}
