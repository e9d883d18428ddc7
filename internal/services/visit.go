package services

import (
	"context"

	"jamjournal/internal/logger"
	"jamjournal/internal/metrics"

	"go.uber.org/zap"
)

type VisitLedger interface {
	Record(ctx context.Context, ip, userAgent string) error
}

type VisitService struct {
	ledger VisitLedger
}

func NewVisitService(ledger VisitLedger) *VisitService { return &VisitService{ledger: ledger} }

// Record пишет посещение. Ошибку возвращает, но вызывающий решает сам,
// прерывать ли из-за неё чтение.
func (s *VisitService) Record(ctx context.Context, ip, userAgent string) error {
	err := s.ledger.Record(ctx, ip, userAgent)
	metrics.RecordVisit(err == nil)
	if err != nil {
		logger.WithCtx(ctx).Warn("Не удалось записать посещение", zap.String("ip", ip), zap.Error(err))
	}
	return err
}
