package currency

import (
	"time"

	"github.com/go-kit/log"

	tours "go-tour-compare"
)

// loggingService decorates a currency.Service with logging
type loggingService struct {
	next   Service
	logger log.Logger
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Currencies() []tours.Currency {
	return s.next.Currencies()
}

func (s *loggingService) Format(amount tours.Amount, code tours.CurrencyCode) (formatted string, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "format",
			"amount", amount,
			"code", code,
			"formatted", formatted,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Format(amount, code)
}
