package notification

import (
	"context"
	"fmt"
	"log"
)

// Recipient is the delivery target for a notification. Phone is optional.
type Recipient struct {
	Email string
	Phone string
}

// Service sends connection lifecycle notifications to members. Messages
// are bilingual since the community spans Portuguese and English speakers.
type Service interface {
	NotifyConnectionRequest(ctx context.Context, to Recipient, fromName string)
	NotifyConnectionAccepted(ctx context.Context, to Recipient, byName string)
}

type service struct {
	email EmailProvider
	sms   SMSProvider
}

// NewService wires the configured providers. Either provider may be nil,
// in which case that channel is skipped.
func NewService(email EmailProvider, sms SMSProvider) Service {
	return &service{email: email, sms: sms}
}

func (s *service) NotifyConnectionRequest(ctx context.Context, to Recipient, fromName string) {
	subject := fmt.Sprintf("Novo pedido de ligação / New connection request from %s", fromName)
	body := fmt.Sprintf(
		"%s quer ligar-se consigo na LusoTown.\n\n%s wants to connect with you on LusoTown.",
		fromName, fromName,
	)
	s.deliver(ctx, to, subject, body)
}

func (s *service) NotifyConnectionAccepted(ctx context.Context, to Recipient, byName string) {
	subject := fmt.Sprintf("Pedido aceite / Request accepted by %s", byName)
	body := fmt.Sprintf(
		"%s aceitou o seu pedido de ligação.\n\n%s accepted your connection request.",
		byName, byName,
	)
	s.deliver(ctx, to, subject, body)
}

// deliver sends on every available channel. Failures are logged, not
// surfaced; notification delivery never blocks the request flow.
func (s *service) deliver(ctx context.Context, to Recipient, subject, body string) {
	if s.email != nil && to.Email != "" {
		msg := &EmailMessage{To: to.Email, Subject: subject, TextBody: body}
		if err := s.email.SendEmail(ctx, msg); err != nil {
			log.Printf("Failed to send email to %s: %v", to.Email, err)
		}
	}

	if s.sms != nil && to.Phone != "" {
		msg := &SMSMessage{To: to.Phone, Body: subject}
		if err := s.sms.SendSMS(ctx, msg); err != nil {
			log.Printf("Failed to send SMS to %s: %v", to.Phone, err)
		}
	}
}
