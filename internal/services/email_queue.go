package services

import (
	"context"
	"sync"

	"jamjournal/internal/logger"
	"jamjournal/internal/metrics"
	"jamjournal/internal/models"

	"go.uber.org/zap"
)

const emailQueueSize = 100

// EmailDispatcher: очередь писем и несколько воркеров над Mailer.
// Письма отправляются вне HTTP-запроса; ошибки только логируются.
type EmailDispatcher struct {
	mailer Mailer
	queue  chan models.EmailMessage
	wg     sync.WaitGroup

	// closed защищён mu: после Close отправка в канал запрещена
	mu     sync.RWMutex
	closed bool
}

func NewEmailDispatcher(mailer Mailer, workers int) *EmailDispatcher {
	if workers <= 0 {
		workers = 1
	}
	d := &EmailDispatcher{
		mailer: mailer,
		queue:  make(chan models.EmailMessage, emailQueueSize),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *EmailDispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.queue {
		err := d.mailer.SendEmail(context.Background(), msg)
		metrics.RecordEmail(err == nil)
		if err != nil {
			logger.Log.Error("Не удалось отправить письмо",
				zap.Int("recipients", len(msg.To)),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
		}
	}
}

// Enqueue не блокирует: при переполненной или закрытой очереди письмо отбрасывается.
func (d *EmailDispatcher) Enqueue(msg models.EmailMessage) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		logger.Log.Warn("Очередь писем закрыта, письмо отброшено", zap.String("subject", msg.Subject))
		metrics.RecordEmail(false)
		return false
	}
	select {
	case d.queue <- msg:
		return true
	default:
		logger.Log.Warn("Очередь писем переполнена, письмо отброшено", zap.String("subject", msg.Subject))
		metrics.RecordEmail(false)
		return false
	}
}

// Close дожидается отправки уже поставленных писем.
func (d *EmailDispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
