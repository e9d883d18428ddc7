package models

import "time"

type Visit struct {
	ID        int64     `json:"id"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	VisitedAt time.Time `json:"visited_at"`
}

// VisitTally: сколько раз встретилась пара (ip, user_agent).
type VisitTally struct {
	IP        string
	UserAgent string
	Hits      int64
}
