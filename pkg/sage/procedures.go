package sage

import (
	"context"
	"errors"

	"github.com/weathersage/sage/pkg/forecast"
	"github.com/weathersage/sage/pkg/query"
)

// ProcedureSummary is the query procedure serving Service.Summary.
const ProcedureSummary = "forecast.summary"

// Register adds the service procedures to r.
func (s *Service) Register(r *query.Router) {
	r.Handle(ProcedureSummary, query.Procedure(func(ctx context.Context, _ struct{}) (Summary, error) {
		sum, err := s.Summary(ctx)
		if err != nil {
			if errors.Is(err, forecast.ErrUpstream) || errors.Is(err, ErrCompletion) {
				return Summary{}, &query.Error{Err: err, Code: query.CodeServiceUnavailable, Message: "the sage is consulting the clouds, try again shortly"}
			}
			return Summary{}, err
		}
		return sum, nil
	}))
}
