package models

// APIKey authenticates external callers of the panel API.
type APIKey struct {
	ID         uint   `json:"id"`
	Key        string `json:"key"`
	Name       string `json:"name"`
	Enable     bool   `json:"enable"`
	CreatedAt  int64  `json:"createdAt,omitempty"`
	LastUsedAt int64  `json:"lastUsedAt,omitempty"`
}

// WebhookConfig is the callback the panel invokes on account events.
type WebhookConfig struct {
	ID             uint   `json:"id,omitempty"`
	CallbackURL    string `json:"callbackUrl"`
	CallbackSecret string `json:"callbackSecret"`
	Enable         bool   `json:"enable"`
}
