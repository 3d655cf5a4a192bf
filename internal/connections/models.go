package connections

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// ConnectionRequest is one member asking another to connect. An accepted
// request is what makes two members connected.
type ConnectionRequest struct {
	ID          string     `db:"id" json:"id"`
	SenderID    string     `db:"sender_id" json:"sender_id"`
	ReceiverID  string     `db:"receiver_id" json:"receiver_id"`
	Message     *string    `db:"message" json:"message,omitempty"`
	Status      string     `db:"status" json:"status"`
	RespondedAt *time.Time `db:"responded_at" json:"responded_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	SenderName   *string `db:"sender_name" json:"sender_name,omitempty"`
	ReceiverName *string `db:"receiver_name" json:"receiver_name,omitempty"`
}

// Connection is the member-facing view of an accepted request.
type Connection struct {
	MemberID       string    `db:"member_id" json:"member_id"`
	DisplayName    string    `db:"display_name" json:"display_name"`
	City           string    `db:"city" json:"city"`
	ProfilePicture *string   `db:"profile_picture" json:"profile_picture,omitempty"`
	ConnectedAt    time.Time `db:"connected_at" json:"connected_at"`
}

// MemberContact is what the notifier needs to reach a member.
type MemberContact struct {
	DisplayName string  `db:"display_name"`
	Email       string  `db:"email"`
	Phone       *string `db:"phone"`
}

type CreateConnectionRequestDTO struct {
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
	Message    string `json:"message" validate:"max=500"`
}

type RespondConnectionRequestDTO struct {
	Action string `json:"action" validate:"required,oneof=accept decline"`
}
