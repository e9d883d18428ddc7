package models

const (
	MediaKindLocal    = "local"
	MediaKindExternal = "external"

	MediaTypeAudio = "audio"
	MediaTypeVideo = "video"
)

type Media struct {
	ID        int64   `json:"id"`
	PostID    int64   `json:"post_id"`
	Kind      string  `json:"type"       validate:"required,oneof=local external"`
	MediaType string  `json:"media_type" validate:"omitempty,oneof=audio video"`
	Platform  string  `json:"platform"`
	URL       string  `json:"url"        validate:"required_if=Kind external"`
	FileURL   *string `json:"file_url"   validate:"required_if=Kind local"`
	Title     string  `json:"title"`
	Artist    string  `json:"artist"`
}

// WithDefaults: media_type по умолчанию audio, как было в админке.
func (m Media) WithDefaults() Media {
	if m.MediaType == "" {
		m.MediaType = MediaTypeAudio
	}
	return m
}
