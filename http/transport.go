// Package http exposes the pricing and comparison core over HTTP.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-kit/log"

	tours "go-tour-compare"
	"go-tour-compare/catalog"
	"go-tour-compare/currency"
	"go-tour-compare/selection"
	"go-tour-compare/session"
)

// sessionCookie carries the visitor's opaque session id.
const sessionCookie = "tc_session"

// Config dependencies for the HTTP Server
type Config struct {
	Catalog  catalog.Service
	Currency currency.Service
	Sessions *session.Manager

	// ListingURL where invalid comparison URLs are redirected to
	ListingURL string

	// DefaultLocale used when a request carries no locale
	DefaultLocale string

	Logger log.Logger
}

// Server dependencies for HTTP Server functions
type Server struct {
	catalog    catalog.Service
	currency   currency.Service
	sessions   *session.Manager
	listingURL string
	locale     string
	logger     log.Logger
	router     http.ServeMux
}

func NewServer(cfg Config) *Server {
	if cfg.ListingURL == "" {
		cfg.ListingURL = "/tours"
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNopLogger()
	}
	server := &Server{
		catalog:    cfg.Catalog,
		currency:   cfg.Currency,
		sessions:   cfg.Sessions,
		listingURL: cfg.ListingURL,
		locale:     cfg.DefaultLocale,
		logger:     cfg.Logger,
		router:     http.ServeMux{},
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Handle("/api/currencies", s.currencies())
	s.router.Handle("/api/currency", s.currentCurrency())
	s.router.Handle("/api/price", s.price())
	s.router.Handle("/api/compare", s.compareSelection())
	s.router.Handle("/api/compare/add", s.compareMutation("add"))
	s.router.Handle("/api/compare/remove", s.compareMutation("remove"))
	s.router.Handle("/api/compare/toggle", s.compareMutation("toggle"))
	s.router.Handle("/compare", s.comparePage())
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

// session resolves the visitor session from the cookie, minting a new
// id (and setting the cookie) on first touch.
func (s *Server) session(rw http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	} else {
		id = s.sessions.NewID()
		http.SetCookie(rw, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
		})
	}
	return s.sessions.Session(r.Context(), id)
}

func (s *Server) writeError(rw http.ResponseWriter, status int, message string) {
	rw.WriteHeader(status)
	_, _ = rw.Write([]byte(`{"error": ` + strconv.Quote(message) + `}`))
}

// currencies produces the HTTP handler listing the configured currencies
func (s *Server) currencies() http.HandlerFunc {

	// entry for marshalling one registry row
	type entry struct {
		Code       tours.CurrencyCode `json:"code"`
		Symbol     string             `json:"symbol"`
		Name       string             `json:"name"`
		RateToBase tours.Rate         `json:"rateToBase"`
	}

	type response struct {
		Currencies []entry `json:"currencies"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodGet {
			s.writeError(rw, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var resp response
		for _, c := range s.currency.Currencies() {
			resp.Currencies = append(resp.Currencies, entry{
				Code:       c.Code,
				Symbol:     c.Symbol,
				Name:       c.Name,
				RateToBase: c.RateToBase,
			})
		}

		_ = json.NewEncoder(rw).Encode(&resp)
	}
}

// currentCurrency produces the HTTP handler for reading and switching
// the session currency
func (s *Server) currentCurrency() http.HandlerFunc {

	type request struct {
		Code tours.CurrencyCode `json:"code"`
	}

	type response struct {
		Code tours.CurrencyCode `json:"code"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		rw.Header().Set("Content-Type", "application/json")

		sess := s.session(rw, r)

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(rw).Encode(&response{Code: sess.Currency.Current()})

		case http.MethodPost, http.MethodPut:
			bytes, err := io.ReadAll(r.Body)
			if err != nil {
				s.writeError(rw, http.StatusBadRequest, "invalid request")
				return
			}

			var req request
			if err := json.Unmarshal(bytes, &req); err != nil {
				s.writeError(rw, http.StatusBadRequest, "invalid json")
				return
			}

			if err := sess.Currency.Set(req.Code); err != nil {
				var unknown *tours.UnknownCurrencyError
				if errors.As(err, &unknown) {
					s.writeError(rw, http.StatusBadRequest, "unknown currency")
					return
				}
				s.writeError(rw, http.StatusInternalServerError, "failed switching currency")
				return
			}

			_ = json.NewEncoder(rw).Encode(&response{Code: sess.Currency.Current()})

		default:
			s.writeError(rw, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

// price produces the HTTP handler formatting a base-currency amount in
// the session currency
func (s *Server) price() http.HandlerFunc {

	type response struct {
		Amount    tours.Amount       `json:"amount"`
		Code      tours.CurrencyCode `json:"code"`
		Formatted string             `json:"formatted"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodGet {
			s.writeError(rw, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
		if err != nil {
			s.writeError(rw, http.StatusBadRequest, "invalid amount")
			return
		}

		sess := s.session(rw, r)
		code := sess.Currency.Current()

		formatted, err := s.currency.Format(tours.Amount(amount), code)
		if err != nil {
			var invalid *tours.InvalidAmountError
			if errors.As(err, &invalid) {
				s.writeError(rw, http.StatusBadRequest, "invalid amount")
				return
			}
			s.writeError(rw, http.StatusInternalServerError, "failed formatting price")
			return
		}

		_ = json.NewEncoder(rw).Encode(&response{
			Amount:    tours.Amount(amount),
			Code:      code,
			Formatted: formatted,
		})
	}
}

// selectionResponse the comparison selection as handed to the UI surface
type selectionResponse struct {
	IDs        []tours.TourID `json:"ids"`
	Count      int            `json:"count"`
	CanCompare bool           `json:"canCompare"`
}

func newSelectionResponse(m *selection.Manager) selectionResponse {
	return selectionResponse{
		IDs:        m.List(),
		Count:      m.Count(),
		CanCompare: m.CanCompare(),
	}
}

// compareSelection produces the HTTP handler for reading and clearing
// the comparison selection
func (s *Server) compareSelection() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")

		sess := s.session(rw, r)

		switch r.Method {
		case http.MethodGet:
			// nothing to do, fall through to the encode below
		case http.MethodDelete:
			sess.Compare.Clear()
		default:
			s.writeError(rw, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		resp := newSelectionResponse(sess.Compare)
		_ = json.NewEncoder(rw).Encode(&resp)
	}
}

// compareMutation produces the HTTP handler for one selection mutation
// (add, remove or toggle)
func (s *Server) compareMutation(op string) http.HandlerFunc {

	type request struct {
		ID tours.TourID `json:"id"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		rw.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			s.writeError(rw, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		bytes, err := io.ReadAll(r.Body)
		if err != nil {
			s.writeError(rw, http.StatusBadRequest, "invalid request")
			return
		}

		var req request
		if err := json.Unmarshal(bytes, &req); err != nil {
			s.writeError(rw, http.StatusBadRequest, "invalid json")
			return
		}
		if req.ID == "" {
			s.writeError(rw, http.StatusBadRequest, "missing tour id")
			return
		}

		sess := s.session(rw, r)

		switch op {
		case "add":
			err = sess.Compare.Add(req.ID)
		case "remove":
			err = sess.Compare.Remove(req.ID)
		case "toggle":
			err = sess.Compare.Toggle(req.ID)
		}

		if err != nil {
			var overflow *tours.OverflowError
			var already *tours.AlreadySelectedError
			var notSelected *tours.NotSelectedError
			switch {
			case errors.As(err, &overflow):
				s.writeError(rw, http.StatusConflict, "remove a tour to compare a new one")
			case errors.As(err, &already):
				s.writeError(rw, http.StatusConflict, "tour already selected")
			case errors.As(err, &notSelected):
				s.writeError(rw, http.StatusNotFound, "tour not selected")
			default:
				s.writeError(rw, http.StatusInternalServerError, "failed updating selection")
			}
			return
		}

		resp := newSelectionResponse(sess.Compare)
		_ = json.NewEncoder(rw).Encode(&resp)
	}
}

// comparePage produces the HTTP handler for the comparison page entry.
// The ids arrive from a URL and are untrusted: they are deduplicated
// and clamped before any tour data is fetched, and the 2..max bound is
// re-checked after unresolvable ids are discarded.
func (s *Server) comparePage() http.HandlerFunc {

	type tourEntry struct {
		ID          tours.TourID `json:"id"`
		Title       string       `json:"title"`
		Description string       `json:"description"`
		Location    string       `json:"location"`
		Days        int          `json:"days"`
		Price       string       `json:"price"`
	}

	type response struct {
		Currency tours.CurrencyCode `json:"currency"`
		Tours    []tourEntry        `json:"tours"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.Header().Set("Content-Type", "application/json")
			s.writeError(rw, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		sess := s.session(rw, r)

		var ids []tours.TourID
		for _, raw := range strings.Split(r.URL.Query().Get("ids"), ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			ids = append(ids, tours.TourID(raw))
		}

		ids = selection.Dedup(ids)
		if max := sess.Compare.Max(); len(ids) > max {
			ids = ids[:max]
		}
		if len(ids) < selection.MinCompare {
			http.Redirect(rw, r, s.listingURL, http.StatusSeeOther)
			return
		}

		locale := r.URL.Query().Get("locale")
		if locale == "" {
			locale = s.locale
		}

		resolved := make([]tours.Tour, 0, len(ids))
		for _, id := range ids {
			tour, err := s.catalog.Tour(r.Context(), id, locale)
			if errors.Is(err, tours.ErrTourNotFound) {
				continue
			}
			if err != nil {
				s.logger.Log("msg", "resolving tour failed", "id", id, "err", err)
				rw.Header().Set("Content-Type", "application/json")
				s.writeError(rw, http.StatusBadGateway, "content api unavailable")
				return
			}
			resolved = append(resolved, tour)
		}

		// the bound holds at page entry too, the page is reachable via
		// raw URLs that bypass the selection manager
		if len(resolved) < selection.MinCompare {
			http.Redirect(rw, r, s.listingURL, http.StatusSeeOther)
			return
		}

		rw.Header().Set("Content-Type", "application/json")

		code := sess.Currency.Current()
		resp := response{Currency: code}
		for _, tour := range resolved {
			price, err := s.currency.Format(tour.BasePrice, code)
			if err != nil {
				s.writeError(rw, http.StatusInternalServerError, "failed formatting price")
				return
			}
			resp.Tours = append(resp.Tours, tourEntry{
				ID:          tour.ID,
				Title:       tour.Title,
				Description: tour.Description,
				Location:    tour.Location,
				Days:        tour.Days,
				Price:       price,
			})
		}

		_ = json.NewEncoder(rw).Encode(&resp)
	}
}
