package usecase

import (
	"context"
	"strings"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/email"
)

// Mailer is the part of the email service contact delivery needs.
type Mailer interface {
	email.Sender
	IsConfigured() bool
	Inbox() string
}

type contactUsecase struct {
	mailer    Mailer
	publisher domain.EventPublisher
}

func NewContactUsecase(mailer Mailer, publisher domain.EventPublisher) domain.ContactUsecase {
	return &contactUsecase{mailer: mailer, publisher: publisher}
}

func trimContact(req *domain.ContactRequest) *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
}

func (uc *contactUsecase) SubmitContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	clean := trimContact(req)
	if clean.Name == "" || clean.Email == "" || clean.Subject == "" || clean.Message == "" {
		return apperror.BadRequest("Name, email, subject and message are required")
	}
	if !uc.mailer.IsConfigured() {
		return apperror.Unavailable("Email service is not configured", nil)
	}

	if err := uc.publisher.Publish(ctx, domain.EventContactSubmitted, clean); err != nil {
		return apperror.Unavailable("Could not queue your message, please try again later", err)
	}
	return nil
}

func (uc *contactUsecase) DeliverContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	msg, err := email.ContactMessage(uc.mailer.Inbox(), email.ContactEmailData{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
	})
	if err != nil {
		return err
	}
	return uc.mailer.Send(ctx, msg)
}
