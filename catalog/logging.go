package catalog

import (
	"context"
	"time"

	"github.com/go-kit/log"

	tours "go-tour-compare"
)

// loggingService decorates a catalog.Service with logging
type loggingService struct {
	next   Service
	logger log.Logger
}

// NewLoggingService return a new logging service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Tour(ctx context.Context, id tours.TourID, locale string) (tour tours.Tour, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "tour",
			"id", id,
			"locale", locale,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Tour(ctx, id, locale)
}

func (s *loggingService) Tours(ctx context.Context, locale string) (result []tours.Tour, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "tours",
			"locale", locale,
			"count", len(result),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Tours(ctx, locale)
}
