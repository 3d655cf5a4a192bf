package connections

import (
	"context"
	"errors"
	"time"

	"github.com/lusotown/lusotown-backend/internal/notification"
)

var (
	ErrRequestNotFound   = errors.New("connection request not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrAlreadyRequested  = errors.New("connection request already sent")
	ErrCannotRequestSelf = errors.New("cannot send a connection request to yourself")
	ErrAlreadyConnected  = errors.New("already connected with this member")
	ErrAlreadyResponded  = errors.New("request has already been responded to")
	ErrUnauthorized      = errors.New("unauthorized to perform this action")
)

type Service interface {
	CreateRequest(ctx context.Context, senderID string, dto *CreateConnectionRequestDTO) (*ConnectionRequest, error)
	RespondToRequest(ctx context.Context, requestID, memberID string, dto *RespondConnectionRequestDTO) (*ConnectionRequest, error)
	ListRequests(ctx context.Context, memberID, direction string) ([]*ConnectionRequest, error)
	ListConnections(ctx context.Context, memberID string) ([]*Connection, error)
	AreConnected(ctx context.Context, memberA, memberB string) (bool, error)
}

type service struct {
	repo     Repository
	notifier notification.Service
	hub      *Hub
}

// NewService wires the repository with delivery channels. Both the
// notifier and the hub may be nil; events are then simply not pushed.
func NewService(repo Repository, notifier notification.Service, hub *Hub) Service {
	return &service{repo: repo, notifier: notifier, hub: hub}
}

func (s *service) CreateRequest(ctx context.Context, senderID string, dto *CreateConnectionRequestDTO) (*ConnectionRequest, error) {
	if senderID == dto.ReceiverID {
		return nil, ErrCannotRequestSelf
	}

	connected, err := s.repo.AreConnected(ctx, senderID, dto.ReceiverID)
	if err != nil {
		return nil, err
	}
	if connected {
		return nil, ErrAlreadyConnected
	}

	hasPending, err := s.repo.HasPendingBetween(ctx, senderID, dto.ReceiverID)
	if err != nil {
		return nil, err
	}
	if hasPending {
		return nil, ErrAlreadyRequested
	}

	request := &ConnectionRequest{
		SenderID:   senderID,
		ReceiverID: dto.ReceiverID,
		Status:     StatusPending,
	}
	if dto.Message != "" {
		request.Message = &dto.Message
	}

	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.announceRequest(ctx, request)

	return request, nil
}

func (s *service) RespondToRequest(ctx context.Context, requestID, memberID string, dto *RespondConnectionRequestDTO) (*ConnectionRequest, error) {
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.ReceiverID != memberID {
		return nil, ErrUnauthorized
	}
	if request.Status != StatusPending {
		return nil, ErrAlreadyResponded
	}

	status := StatusDeclined
	if dto.Action == "accept" {
		status = StatusAccepted
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateRequestStatus(ctx, requestID, status, now); err != nil {
		return nil, err
	}

	request.Status = status
	request.RespondedAt = &now

	if status == StatusAccepted {
		s.announceAccepted(ctx, request)
	}

	return request, nil
}

func (s *service) ListRequests(ctx context.Context, memberID, direction string) ([]*ConnectionRequest, error) {
	if direction == "sent" {
		return s.repo.ListOutgoing(ctx, memberID)
	}
	return s.repo.ListIncoming(ctx, memberID)
}

func (s *service) ListConnections(ctx context.Context, memberID string) ([]*Connection, error) {
	return s.repo.ListConnections(ctx, memberID)
}

func (s *service) AreConnected(ctx context.Context, memberA, memberB string) (bool, error) {
	return s.repo.AreConnected(ctx, memberA, memberB)
}

func (s *service) announceRequest(ctx context.Context, request *ConnectionRequest) {
	if s.hub != nil {
		s.hub.NotifyConnectionRequest(request.ReceiverID, request)
	}
	if s.notifier == nil {
		return
	}

	sender, err := s.repo.GetMemberContact(ctx, request.SenderID)
	if err != nil {
		return
	}
	receiver, err := s.repo.GetMemberContact(ctx, request.ReceiverID)
	if err != nil {
		return
	}

	to := notification.Recipient{Email: receiver.Email}
	if receiver.Phone != nil {
		to.Phone = *receiver.Phone
	}
	s.notifier.NotifyConnectionRequest(ctx, to, sender.DisplayName)
}

func (s *service) announceAccepted(ctx context.Context, request *ConnectionRequest) {
	if s.hub != nil {
		s.hub.NotifyConnectionAccepted(request.SenderID, request)
	}
	if s.notifier == nil {
		return
	}

	receiver, err := s.repo.GetMemberContact(ctx, request.ReceiverID)
	if err != nil {
		return
	}
	sender, err := s.repo.GetMemberContact(ctx, request.SenderID)
	if err != nil {
		return
	}

	to := notification.Recipient{Email: sender.Email}
	if sender.Phone != nil {
		to.Phone = *sender.Phone
	}
	s.notifier.NotifyConnectionAccepted(ctx, to, receiver.DisplayName)
}
