package sage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/weathersage/sage/pkg/cache"
	"github.com/weathersage/sage/pkg/forecast"
	"github.com/weathersage/sage/pkg/logger"
)

const summaryTTL = time.Hour

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCache sets the summary cache. Default: in-memory, 24 entries.
func WithCache(c cache.Cache[Summary]) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = logger.Component(l, "sage")
		}
	}
}

// WithLocation sets the time zone hours are truncated in. Default: UTC.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCodes sets the code table used for the CSV and the prompt.
// Default: forecast.DefaultCodes.
func WithCodes(c *forecast.Codes, mappings string) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.codes = c
			s.mappings = mappings
		}
	}
}

// Service produces hourly forecast summaries.
type Service struct {
	source   forecast.Source
	llm      LLM
	cache    cache.Cache[Summary]
	codes    *forecast.Codes
	logger   *slog.Logger
	location *time.Location
	now      func() time.Time
	mappings string
}

// NewService creates a service reading from source and summarising with llm.
func NewService(source forecast.Source, llm LLM, opts ...ServiceOption) *Service {
	s := &Service{
		source:   source,
		llm:      llm,
		logger:   logger.NewNope(),
		location: time.UTC,
		now:      time.Now,
		mappings: forecast.CodeMappings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.NewMemory[Summary](cache.WithMaxEntries(24))
	}
	return s
}

// Hour returns the current time truncated to the hour in the service zone.
func (s *Service) Hour() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, s.location)
}

// Summary returns the summary for the current hour, computing it on the
// first request of the hour.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	hour := s.Hour()
	key := hour.Format(time.RFC3339)

	return cache.GetOrSet(ctx, s.cache, key, func(ctx context.Context) (Summary, time.Duration, error) {
		sum, err := s.compute(ctx, hour)
		return sum, summaryTTL, err
	})
}

// Refresh drops the cached summary for the current hour.
func (s *Service) Refresh(ctx context.Context) error {
	return s.cache.Delete(ctx, s.Hour().Format(time.RFC3339))
}

// Close releases the cache.
func (s *Service) Close(context.Context) error {
	return s.cache.Close()
}

func (s *Service) compute(ctx context.Context, hour time.Time) (Summary, error) {
	rep, err := s.source.ThreeHourly(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("sage: fetch forecast: %w", err)
	}

	csv, err := forecast.Transform(rep, s.codes)
	if err != nil {
		return Summary{}, fmt.Errorf("sage: transform forecast: %w", err)
	}

	now := s.now().In(s.location)
	completion, err := s.llm.Complete(ctx, BuildPrompt(s.mappings, csv, now))
	if err != nil {
		return Summary{}, err
	}

	s.logger.DebugContext(ctx, "summary completed",
		slog.Time("hour", hour),
		slog.Int64("prompt_tokens", completion.PromptTokens),
		slog.Int64("output_tokens", completion.OutputTokens),
	)

	sum, err := ParseSummary(completion.Content)
	if err != nil {
		s.logger.WarnContext(ctx, "unparseable summary", slog.Any("error", err))
		return Summary{}, err
	}

	sum.Hour = hour
	sum.GeneratedAt = now
	sum.Location = rep.DV.Location.Name
	return sum, nil
}
