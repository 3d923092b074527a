// Package catalog resolves tour records from the headless content API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	tours "go-tour-compare"
)

// Service wraps the content API REST endpoints
type Service interface {
	// Tour resolves one tour by id, localized. Fails with
	// tours.ErrTourNotFound when the id does not exist.
	Tour(ctx context.Context, id tours.TourID, locale string) (tours.Tour, error)

	// Tours lists all published tours, localized.
	Tours(ctx context.Context, locale string) ([]tours.Tour, error)
}

// service content API client
type service struct {
	// url base API url
	url string

	// client for HTTP requests
	client http.Client
}

// NewService constructs a valid catalog Service talking to the content
// API at baseURL.
func NewService(baseURL string) Service {
	return &service{
		url: baseURL,
		client: http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// tourPayload the subset of the CMS tour document this module consumes
type tourPayload struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Days        int     `json:"days"`
	Price       float64 `json:"price"`
}

func (p tourPayload) tour() tours.Tour {
	return tours.Tour{
		ID:          tours.TourID(p.ID),
		Title:       p.Title,
		Description: p.Description,
		Location:    p.Location,
		Days:        p.Days,
		BasePrice:   tours.Amount(p.Price),
	}
}

// Tour loads one tour from the content API.
func (s *service) Tour(ctx context.Context, id tours.TourID, locale string) (tours.Tour, error) {
	type Response struct {
		Data tourPayload `json:"data"`
	}

	u := fmt.Sprintf("%v/tours/%v?locale=%v", s.url, url.PathEscape(string(id)), url.QueryEscape(locale))

	request, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return tours.Tour{}, fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return tours.Tour{}, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode == http.StatusNotFound {
		return tours.Tour{}, fmt.Errorf("tour [%v]: %w", id, tours.ErrTourNotFound)
	}
	if httpResponse.StatusCode != http.StatusOK {
		return tours.Tour{}, fmt.Errorf("content api status %v", httpResponse.StatusCode)
	}

	var response Response
	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return tours.Tour{}, fmt.Errorf("reading json: %w", err)
	}

	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return tours.Tour{}, fmt.Errorf("decoding json: %w", err)
	}

	return response.Data.tour(), nil
}

// Tours loads the published tour listing from the content API.
func (s *service) Tours(ctx context.Context, locale string) ([]tours.Tour, error) {
	type Response struct {
		Data []tourPayload `json:"data"`
	}

	u := fmt.Sprintf("%v/tours?locale=%v", s.url, url.QueryEscape(locale))

	request, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content api status %v", httpResponse.StatusCode)
	}

	var response Response
	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("reading json: %w", err)
	}

	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	result := make([]tours.Tour, 0, len(response.Data))
	for _, p := range response.Data {
		result = append(result, p.tour())
	}

	return result, nil
}
