package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"jamjournal/internal/logger"
	"jamjournal/internal/models"
	"jamjournal/internal/utils/helpers"

	"go.uber.org/zap"
)

const (
	SettingSiteURL           = "site_url"
	SettingSubmitRedirectURL = "submit_redirect_url"
)

type SettingsReader interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
}

type EmailEnqueuer interface {
	Enqueue(msg models.EmailMessage) bool
}

// SubscriberSource отдает адреса активных подписчиков рассылки.
type SubscriberSource interface {
	GetAllSubscribedEmails(ctx context.Context) ([]string, error)
}

// siteLinks строит публичные ссылки сайта. Базовый адрес берется из настройки
// site_url, а при ее отсутствии из конфига.
type siteLinks struct {
	settings SettingsReader
	fallback string
}

func newSiteLinks(settings SettingsReader, fallback string) siteLinks {
	return siteLinks{settings: settings, fallback: strings.TrimRight(fallback, "/")}
}

func (l siteLinks) base(ctx context.Context) string {
	if l.settings == nil {
		return l.fallback
	}
	v, ok, err := l.settings.GetSetting(ctx, SettingSiteURL)
	if err != nil {
		logger.WithCtx(ctx).Warn("Не удалось прочитать site_url", zap.Error(err))
		return l.fallback
	}
	if !ok || strings.TrimSpace(v) == "" {
		return l.fallback
	}
	return strings.TrimRight(strings.TrimSpace(v), "/")
}

func postLink(base string, id int64) string {
	return fmt.Sprintf("%s/posts/%d", base, id)
}

func unsubscribeLink(base, email string) string {
	return base + "/unsubscribe?email=" + url.QueryEscape(email)
}

// PostNotifier рассылает подписчикам письмо о новом посте.
// Каждый адресат получает отдельное письмо со своей ссылкой отписки.
type PostNotifier struct {
	subscribers SubscriberSource
	queue       EmailEnqueuer
	links       siteLinks
}

func NewPostNotifier(subscribers SubscriberSource, settings SettingsReader, queue EmailEnqueuer, fallbackURL string) *PostNotifier {
	return &PostNotifier{
		subscribers: subscribers,
		queue:       queue,
		links:       newSiteLinks(settings, fallbackURL),
	}
}

func (n *PostNotifier) PostCreated(ctx context.Context, p *models.Post) {
	// не завязываемся на отмену HTTP-запроса
	ctx = context.WithoutCancel(ctx)
	log := logger.WithCtx(ctx)

	emails, err := n.subscribers.GetAllSubscribedEmails(ctx)
	if err != nil {
		log.Error("Не удалось получить подписчиков", zap.Error(err))
		return
	}
	if len(emails) == 0 {
		return
	}

	base := n.links.base(ctx)
	link := postLink(base, p.ID)
	subject := "Новый пост: " + p.Title

	queued := 0
	for _, email := range emails {
		body := helpers.BuildPostHTML(p.Title, p.Excerpt, link, unsubscribeLink(base, email))
		if n.queue.Enqueue(models.EmailMessage{To: []string{email}, Subject: subject, HTML: body}) {
			queued++
		}
	}
	log.Info("Уведомление о посте поставлено в очередь",
		zap.Int64("post_id", p.ID),
		zap.Int("subscribers", len(emails)),
		zap.Int("queued", queued),
	)
}
