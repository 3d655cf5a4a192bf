package connections

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lusotown/lusotown-backend/internal/notification"
)

type fakeRepository struct {
	requests map[string]*ConnectionRequest
	contacts map[string]*MemberContact
	nextID   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		requests: make(map[string]*ConnectionRequest),
		contacts: map[string]*MemberContact{
			"maria": {DisplayName: "Maria", Email: "maria@example.com"},
			"joao":  {DisplayName: "João", Email: "joao@example.com"},
		},
	}
}

func (f *fakeRepository) CreateRequest(ctx context.Context, req *ConnectionRequest) error {
	f.nextID++
	req.ID = fmt.Sprintf("req-%d", f.nextID)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRepository) GetRequest(ctx context.Context, id string) (*ConnectionRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRepository) UpdateRequestStatus(ctx context.Context, id, status string, respondedAt time.Time) error {
	req, ok := f.requests[id]
	if !ok {
		return ErrRequestNotFound
	}
	req.Status = status
	req.RespondedAt = &respondedAt
	return nil
}

func (f *fakeRepository) ListIncoming(ctx context.Context, memberID string) ([]*ConnectionRequest, error) {
	var out []*ConnectionRequest
	for _, req := range f.requests {
		if req.ReceiverID == memberID && req.Status == StatusPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListOutgoing(ctx context.Context, memberID string) ([]*ConnectionRequest, error) {
	var out []*ConnectionRequest
	for _, req := range f.requests {
		if req.SenderID == memberID && req.Status == StatusPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRepository) HasPendingBetween(ctx context.Context, senderID, receiverID string) (bool, error) {
	for _, req := range f.requests {
		if req.SenderID == senderID && req.ReceiverID == receiverID && req.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) AreConnected(ctx context.Context, a, b string) (bool, error) {
	for _, req := range f.requests {
		if req.Status != StatusAccepted {
			continue
		}
		if (req.SenderID == a && req.ReceiverID == b) || (req.SenderID == b && req.ReceiverID == a) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) ListConnections(ctx context.Context, memberID string) ([]*Connection, error) {
	return nil, nil
}

func (f *fakeRepository) GetMemberContact(ctx context.Context, memberID string) (*MemberContact, error) {
	contact, ok := f.contacts[memberID]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return contact, nil
}

func newTestService(repo Repository, email *notification.MockEmailProvider) Service {
	notifier := notification.NewService(email, notification.NewMockSMSProvider())
	return NewService(repo, notifier, nil)
}

func TestCreateRequestNotifiesReceiver(t *testing.T) {
	repo := newFakeRepository()
	email := notification.NewMockEmailProvider()
	svc := newTestService(repo, email)

	req, err := svc.CreateRequest(context.Background(), "maria", &CreateConnectionRequestDTO{
		ReceiverID: "joao",
		Message:    "Olá!",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, req.Status)
	require.Len(t, email.SentEmails, 1)
	assert.Equal(t, "joao@example.com", email.SentEmails[0].To)
	assert.Contains(t, email.SentEmails[0].Subject, "Maria")
}

func TestCreateRequestRejectsSelf(t *testing.T) {
	svc := newTestService(newFakeRepository(), notification.NewMockEmailProvider())

	_, err := svc.CreateRequest(context.Background(), "maria", &CreateConnectionRequestDTO{ReceiverID: "maria"})
	assert.ErrorIs(t, err, ErrCannotRequestSelf)
}

func TestCreateRequestRejectsDuplicate(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, notification.NewMockEmailProvider())

	_, err := svc.CreateRequest(context.Background(), "maria", &CreateConnectionRequestDTO{ReceiverID: "joao"})
	require.NoError(t, err)

	_, err = svc.CreateRequest(context.Background(), "maria", &CreateConnectionRequestDTO{ReceiverID: "joao"})
	assert.ErrorIs(t, err, ErrAlreadyRequested)
}

func TestRespondAcceptNotifiesSender(t *testing.T) {
	repo := newFakeRepository()
	email := notification.NewMockEmailProvider()
	svc := newTestService(repo, email)

	req, err := svc.CreateRequest(context.Background(), "maria", &CreateConnectionRequestDTO{ReceiverID: "joao"})
	require.NoError(t, err)

	updated, err := svc.RespondToRequest(context.Background(), req.ID, "joao", &RespondConnectionRequestDTO{Action: "accept"})
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, updated.Status)
	assert.NotNil(t, updated.RespondedAt)

	// One email for the request, one for the acceptance.
	require.Len(t, email.SentEmails, 2)
	assert.Equal(t, "maria@example.com", email.SentEmails[1].To)

	connected, err := svc.AreConnected(context.Background(), "maria", "joao")
	require.NoError(t, err)
	assert.True(t, connected)
}

func TestRespondDeclineDoesNotConnect(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, notification.NewMockEmailProvider())

	req, err := svc.CreateRequest(context.Background(), "maria", &CreateConnectionRequestDTO{ReceiverID: "joao"})
	require.NoError(t, err)

	updated, err := svc.RespondToRequest(context.Background(), req.ID, "joao", &RespondConnectionRequestDTO{Action: "decline"})
	require.NoError(t, err)
	assert.Equal(t, StatusDeclined, updated.Status)

	connected, err := svc.AreConnected(context.Background(), "maria", "joao")
	require.NoError(t, err)
	assert.False(t, connected)
}

func TestRespondOnlyReceiverMayAnswer(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, notification.NewMockEmailProvider())

	req, err := svc.CreateRequest(context.Background(), "maria", &CreateConnectionRequestDTO{ReceiverID: "joao"})
	require.NoError(t, err)

	_, err = svc.RespondToRequest(context.Background(), req.ID, "maria", &RespondConnectionRequestDTO{Action: "accept"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRespondTwiceFails(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, notification.NewMockEmailProvider())

	req, err := svc.CreateRequest(context.Background(), "maria", &CreateConnectionRequestDTO{ReceiverID: "joao"})
	require.NoError(t, err)

	_, err = svc.RespondToRequest(context.Background(), req.ID, "joao", &RespondConnectionRequestDTO{Action: "accept"})
	require.NoError(t, err)

	_, err = svc.RespondToRequest(context.Background(), req.ID, "joao", &RespondConnectionRequestDTO{Action: "decline"})
	assert.ErrorIs(t, err, ErrAlreadyResponded)
}
