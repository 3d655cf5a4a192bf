package connections

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateRequest(ctx context.Context, req *ConnectionRequest) error
	GetRequest(ctx context.Context, id string) (*ConnectionRequest, error)
	UpdateRequestStatus(ctx context.Context, id, status string, respondedAt time.Time) error
	ListIncoming(ctx context.Context, memberID string) ([]*ConnectionRequest, error)
	ListOutgoing(ctx context.Context, memberID string) ([]*ConnectionRequest, error)
	HasPendingBetween(ctx context.Context, senderID, receiverID string) (bool, error)
	AreConnected(ctx context.Context, memberA, memberB string) (bool, error)
	ListConnections(ctx context.Context, memberID string) ([]*Connection, error)
	GetMemberContact(ctx context.Context, memberID string) (*MemberContact, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateRequest(ctx context.Context, req *ConnectionRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	query := `
		INSERT INTO connection_requests (id, sender_id, receiver_id, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		req.ID, req.SenderID, req.ReceiverID, req.Message, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *postgresRepository) GetRequest(ctx context.Context, id string) (*ConnectionRequest, error) {
	var req ConnectionRequest
	query := `
		SELECT cr.*,
		       ms.display_name AS sender_name,
		       mr.display_name AS receiver_name
		FROM connection_requests cr
		JOIN members ms ON cr.sender_id = ms.id
		JOIN members mr ON cr.receiver_id = mr.id
		WHERE cr.id = $1
	`

	err := r.db.QueryRowxContext(ctx, query, id).StructScan(&req)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *postgresRepository) UpdateRequestStatus(ctx context.Context, id, status string, respondedAt time.Time) error {
	query := `
		UPDATE connection_requests
		SET status = $2, responded_at = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status, respondedAt)
	return err
}

func (r *postgresRepository) ListIncoming(ctx context.Context, memberID string) ([]*ConnectionRequest, error) {
	query := `
		SELECT cr.*, ms.display_name AS sender_name
		FROM connection_requests cr
		JOIN members ms ON cr.sender_id = ms.id
		WHERE cr.receiver_id = $1 AND cr.status = 'pending'
		ORDER BY cr.created_at DESC
	`

	var requests []*ConnectionRequest
	err := r.db.SelectContext(ctx, &requests, query, memberID)
	return requests, err
}

func (r *postgresRepository) ListOutgoing(ctx context.Context, memberID string) ([]*ConnectionRequest, error) {
	query := `
		SELECT cr.*, mr.display_name AS receiver_name
		FROM connection_requests cr
		JOIN members mr ON cr.receiver_id = mr.id
		WHERE cr.sender_id = $1 AND cr.status = 'pending'
		ORDER BY cr.created_at DESC
	`

	var requests []*ConnectionRequest
	err := r.db.SelectContext(ctx, &requests, query, memberID)
	return requests, err
}

func (r *postgresRepository) HasPendingBetween(ctx context.Context, senderID, receiverID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM connection_requests
			WHERE sender_id = $1 AND receiver_id = $2 AND status = 'pending'
		)
	`

	err := r.db.GetContext(ctx, &exists, query, senderID, receiverID)
	return exists, err
}

func (r *postgresRepository) AreConnected(ctx context.Context, memberA, memberB string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM connection_requests
			WHERE status = 'accepted'
			  AND ((sender_id = $1 AND receiver_id = $2)
			    OR (sender_id = $2 AND receiver_id = $1))
		)
	`

	err := r.db.GetContext(ctx, &exists, query, memberA, memberB)
	return exists, err
}

func (r *postgresRepository) ListConnections(ctx context.Context, memberID string) ([]*Connection, error) {
	query := `
		SELECT m.id AS member_id, m.display_name, m.city,
		       m.profile_picture, cr.responded_at AS connected_at
		FROM connection_requests cr
		JOIN members m ON m.id = CASE
			WHEN cr.sender_id = $1 THEN cr.receiver_id
			ELSE cr.sender_id
		END
		WHERE cr.status = 'accepted'
		  AND (cr.sender_id = $1 OR cr.receiver_id = $1)
		ORDER BY cr.responded_at DESC
	`

	var conns []*Connection
	err := r.db.SelectContext(ctx, &conns, query, memberID)
	return conns, err
}

func (r *postgresRepository) GetMemberContact(ctx context.Context, memberID string) (*MemberContact, error) {
	var contact MemberContact
	query := `
		SELECT m.display_name, u.email, u.phone
		FROM members m
		JOIN users u ON u.id = m.id
		WHERE m.id = $1
	`

	err := r.db.GetContext(ctx, &contact, query, memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}
