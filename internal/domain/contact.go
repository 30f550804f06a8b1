package domain

import "context"

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100,valid_name"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=150"`
	Message string `json:"message" binding:"required,max=5000"`
}

type ContactUsecase interface {
	// SubmitContactMessage queues the message and returns immediately.
	SubmitContactMessage(ctx context.Context, req *ContactRequest) error
	// DeliverContactMessage sends a queued message.
	DeliverContactMessage(ctx context.Context, req *ContactRequest) error
}
