package models

// Read-status values for Notification.ReadStatus.
const (
	ReadStatusUnread = "unread"
	ReadStatusRead   = "read"
)

// Notification is a single in-app notification row.
//
// Invariants: CreatedAt <= UpdatedAt, and SentAt <= DeliveredAt when both are
// set. The local cache lists notifications by SentAt descending.
type Notification struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Type            string `json:"type"`
	Category        string `json:"category"`
	Priority        string `json:"priority"`
	DeliveryChannel string `json:"delivery_channel"`

	Title            string `json:"title"`
	Body             string `json:"body"`
	ShortDescription string `json:"short_description"`
	ImageURL         string `json:"image_url"`
	ActionType       string `json:"action_type"`
	ActionValue      string `json:"action_value"`
	Payload          string `json:"payload"`

	ReadStatus string `json:"read_status"`

	SentAt      *int64 `json:"sent_at"`
	DeliveredAt *int64 `json:"delivered_at"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}
