package service

import (
	"context"

	"github.com/robfig/cron/v3"

	"golang-stock-dashboard/internal/server/repository"
	"golang-stock-dashboard/pkg/logger"
)

// WarmService periodically pre-fetches the screening universe so the first
// recommendation request of the day does not pay fifteen upstream calls.
type WarmService interface {
	Start(ctx context.Context) error
	Stop()
	WarmUniverse(ctx context.Context)
}

// NewWarmService creates a cron-driven cache warmer. An empty cronSpec
// disables scheduling; WarmUniverse can still be called directly.
func NewWarmService(quoteService QuoteService, cronSpec string, log *logger.Logger) WarmService {
	return &warmService{
		quoteService: quoteService,
		universe:     repository.ScreeningUniverse(),
		cronSpec:     cronSpec,
		cron:         cron.New(),
		logger:       log,
	}
}

type warmService struct {
	quoteService QuoteService
	universe     []string
	cronSpec     string
	cron         *cron.Cron
	logger       *logger.Logger
}

func (s *warmService) Start(ctx context.Context) error {
	if s.cronSpec == "" {
		s.logger.Info("Quote warm job disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.cronSpec, func() {
		s.WarmUniverse(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Quote warm job scheduled", logger.StringField("cron", s.cronSpec))
	return nil
}

func (s *warmService) Stop() {
	s.cron.Stop()
}

// WarmUniverse fetches every universe symbol once, letting the quote
// service populate its cache. Failures are logged and skipped.
func (s *warmService) WarmUniverse(ctx context.Context) {
	for _, symbol := range s.universe {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.quoteService.Search(ctx, symbol); err != nil {
			s.logger.Warn("Warm fetch failed",
				logger.StringField("symbol", symbol), logger.ErrorField(err))
		}
	}
	s.logger.Info("Quote warm pass complete", logger.IntField("symbols", len(s.universe)))
}
