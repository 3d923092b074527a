package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	tours "go-tour-compare"
)

func TestService_Tour(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.True(t, strings.HasSuffix(req.URL.String(), "/tours/alpine-trek?locale=en"))
		response := `{
			"data": {
				"id": "alpine-trek",
				"title": "Alpine Trek",
				"description": "Five days above the tree line",
				"location": "Switzerland",
				"days": 5,
				"price": 1890.0
			}
		}`
		_, _ = rw.Write([]byte(response))
	}))
	defer server.Close()

	s := service{url: server.URL}

	tour, err := s.Tour(context.Background(), "alpine-trek", "en")

	assert.Nil(t, err)
	assert.Equal(t, tours.TourID("alpine-trek"), tour.ID)
	assert.Equal(t, "Alpine Trek", tour.Title)
	assert.Equal(t, "Switzerland", tour.Location)
	assert.Equal(t, 5, tour.Days)
	assert.Equal(t, tours.Amount(1890.0), tour.BasePrice)
}

func TestService_TourNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := service{url: server.URL}

	_, err := s.Tour(context.Background(), "gone", "en")

	assert.True(t, errors.Is(err, tours.ErrTourNotFound))
}

func TestService_TourTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		time.Sleep(10 * time.Millisecond)
		_, _ = rw.Write([]byte("{}"))
	}))
	defer server.Close()

	s := service{url: server.URL}
	s.client.Timeout = 1 * time.Millisecond

	_, err := s.Tour(context.Background(), "slow", "en")

	assert.NotNil(t, err)
}

func TestService_Tours(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.True(t, strings.HasSuffix(req.URL.String(), "/tours?locale=de"))
		response := `{
			"data": [
				{"id": "a", "title": "A", "price": 100.0},
				{"id": "b", "title": "B", "price": 200.0}
			]
		}`
		_, _ = rw.Write([]byte(response))
	}))
	defer server.Close()

	s := service{url: server.URL}

	result, err := s.Tours(context.Background(), "de")

	assert.Nil(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, tours.TourID("a"), result[0].ID)
	assert.Equal(t, tours.Amount(200.0), result[1].BasePrice)
}
