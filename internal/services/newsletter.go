package services

import (
	"context"
	"errors"
	"strings"

	"jamjournal/internal/logger"
	"jamjournal/internal/models"
	"jamjournal/internal/utils/helpers"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// ErrMailDisabled: почта не настроена, рассылку отправить нельзя.
var ErrMailDisabled = errors.New("mail delivery is not configured")

type SubscriptionStore interface {
	SubscriberSource
	Subscribe(ctx context.Context, email string) error
	Unsubscribe(ctx context.Context, email string) (bool, error)
	GetActiveSubscribers(ctx context.Context) ([]models.Subscriber, error)
	AddCampaign(ctx context.Context, c models.Campaign) (int64, error)
	GetCampaigns(ctx context.Context) ([]models.Campaign, error)
}

type NewsletterService struct {
	store  SubscriptionStore
	queue  EmailEnqueuer
	links  siteLinks
	policy *bluemonday.Policy
}

// NewNewsletterService: queue может быть nil, тогда Send отвечает ErrMailDisabled.
func NewNewsletterService(store SubscriptionStore, settings SettingsReader, queue EmailEnqueuer, fallbackURL string) *NewsletterService {
	return &NewsletterService{
		store:  store,
		queue:  queue,
		links:  newSiteLinks(settings, fallbackURL),
		policy: bluemonday.UGCPolicy(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *NewsletterService) Subscribe(ctx context.Context, req models.SubscribeRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return err
	}
	if err := s.store.Subscribe(ctx, req.Email); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("Новый подписчик рассылки")
	return nil
}

// Unsubscribe не сообщает клиенту, был ли адрес в базе.
func (s *NewsletterService) Unsubscribe(ctx context.Context, req models.SubscribeRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return err
	}
	found, err := s.store.Unsubscribe(ctx, req.Email)
	if err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("Отписка от рассылки", zap.Bool("found", found))
	return nil
}

func (s *NewsletterService) Subscribers(ctx context.Context) ([]models.Subscriber, error) {
	return s.store.GetActiveSubscribers(ctx)
}

func (s *NewsletterService) Campaigns(ctx context.Context) ([]models.Campaign, error) {
	return s.store.GetCampaigns(ctx)
}

// Send сохраняет кампанию и ставит в очередь по письму на каждого активного подписчика.
// Sent в ответе считает письма, принятые очередью.
func (s *NewsletterService) Send(ctx context.Context, req models.CampaignRequest) (*models.CampaignResult, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if s.queue == nil {
		return nil, ErrMailDisabled
	}
	content := s.policy.Sanitize(req.Content)
	if strings.TrimSpace(content) == "" {
		return nil, validationErr("content is empty after sanitizing")
	}

	emails, err := s.store.GetAllSubscribedEmails(ctx)
	if err != nil {
		return nil, err
	}
	id, err := s.store.AddCampaign(ctx, models.Campaign{Subject: req.Subject, Content: content, PostID: req.PostID})
	if err != nil {
		return nil, err
	}

	base := s.links.base(ctx)
	sent := 0
	for _, email := range emails {
		msg := models.EmailMessage{
			To:      []string{email},
			Subject: req.Subject,
			HTML:    helpers.AppendUnsubscribe(content, unsubscribeLink(base, email)),
		}
		if s.queue.Enqueue(msg) {
			sent++
		}
	}
	logger.WithCtx(ctx).Info("Рассылка поставлена в очередь",
		zap.Int64("campaign_id", id),
		zap.Int("subscribers", len(emails)),
		zap.Int("sent", sent),
	)
	return &models.CampaignResult{CampaignID: id, Sent: sent}, nil
}
