package models

import "time"

const (
	SubscriberActive       = "active"
	SubscriberUnsubscribed = "unsubscribed"
)

type Subscriber struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

type Campaign struct {
	ID      int64     `json:"id"`
	Subject string    `json:"subject"`
	Content string    `json:"content"`
	PostID  *int64    `json:"post_id,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type CampaignRequest struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
	PostID  *int64 `json:"post_id" validate:"omitempty,gt=0"`
}

// CampaignResult: сколько писем ушло в очередь по рассылке.
type CampaignResult struct {
	CampaignID int64 `json:"campaignId"`
	Sent       int   `json:"sent"`
}
