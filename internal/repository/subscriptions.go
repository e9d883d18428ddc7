package repository

import (
	"context"

	"jamjournal/internal/db"
	"jamjournal/internal/models"
)

// SubscriptionRepo: подписчики рассылки и история кампаний.
type SubscriptionRepo struct {
	db db.PgxIface
}

func NewSubscriptionRepo(pool db.PgxIface) *SubscriptionRepo {
	return &SubscriptionRepo{db: pool}
}

const (
	// повторная подписка снова делает адрес активным
	subscribeQuery = `
		INSERT INTO newsletter_subscribers (email, status, subscribed_at, unsubscribed_at)
		VALUES ($1, 'active', NOW(), NULL)
		ON CONFLICT (email) DO UPDATE
		SET status = 'active', subscribed_at = NOW(), unsubscribed_at = NULL`
	unsubscribeQuery = `
		UPDATE newsletter_subscribers
		SET status = 'unsubscribed', unsubscribed_at = NOW()
		WHERE email = $1`
	activeSubscribersQuery = `
		SELECT id, email, subscribed_at, status
		FROM newsletter_subscribers WHERE status = 'active' ORDER BY id`
	subscribedEmailsQuery = `
		SELECT email FROM newsletter_subscribers WHERE status = 'active' ORDER BY id`
	insertCampaignQuery = `
		INSERT INTO newsletter_campaigns (subject, content, post_id)
		VALUES ($1, $2, $3)
		RETURNING id`
	selectCampaignsQuery = `
		SELECT id, subject, content, post_id, sent_at
		FROM newsletter_campaigns ORDER BY sent_at DESC, id DESC`
)

func (r *SubscriptionRepo) Subscribe(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, subscribeQuery, email)
	return storeErr("subscribe", err)
}

// Unsubscribe: found=false, если адреса нет в базе.
func (r *SubscriptionRepo) Unsubscribe(ctx context.Context, email string) (bool, error) {
	tag, err := r.db.Exec(ctx, unsubscribeQuery, email)
	if err != nil {
		return false, storeErr("unsubscribe", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SubscriptionRepo) GetActiveSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := r.db.Query(ctx, activeSubscribersQuery)
	if err != nil {
		return nil, storeErr("list subscribers", err)
	}
	defer rows.Close()

	list := []models.Subscriber{}
	for rows.Next() {
		var s models.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.SubscribedAt, &s.Status); err != nil {
			return nil, storeErr("list subscribers", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list subscribers", err)
	}
	return list, nil
}

// GetAllSubscribedEmails: только адреса активных подписчиков, для рассылок.
func (r *SubscriptionRepo) GetAllSubscribedEmails(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, subscribedEmailsQuery)
	if err != nil {
		return nil, storeErr("subscribed emails", err)
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, storeErr("subscribed emails", err)
		}
		emails = append(emails, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("subscribed emails", err)
	}
	return emails, nil
}

func (r *SubscriptionRepo) AddCampaign(ctx context.Context, c models.Campaign) (int64, error) {
	var id int64
	if err := r.db.QueryRow(ctx, insertCampaignQuery, c.Subject, c.Content, c.PostID).Scan(&id); err != nil {
		return 0, storeErr("add campaign", err)
	}
	return id, nil
}

func (r *SubscriptionRepo) GetCampaigns(ctx context.Context) ([]models.Campaign, error) {
	rows, err := r.db.Query(ctx, selectCampaignsQuery)
	if err != nil {
		return nil, storeErr("list campaigns", err)
	}
	defer rows.Close()

	list := []models.Campaign{}
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.Subject, &c.Content, &c.PostID, &c.SentAt); err != nil {
			return nil, storeErr("list campaigns", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list campaigns", err)
	}
	return list, nil
}
