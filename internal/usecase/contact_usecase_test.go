package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitContactMessage(t *testing.T) {
	ctx := context.Background()
	req := &domain.ContactRequest{Name: " Jane ", Email: "jane@example.com", Subject: "Hi", Message: "Question about plans"}

	t.Run("queues trimmed message", func(t *testing.T) {
		mailer := new(MockMailer)
		pub := new(MockPublisher)
		mailer.On("IsConfigured").Return(true)
		pub.On("Publish", ctx, domain.EventContactSubmitted, mock.MatchedBy(func(r *domain.ContactRequest) bool {
			return r.Name == "Jane"
		})).Return(nil)

		require.NoError(t, usecase.NewContactUsecase(mailer, pub).SubmitContactMessage(ctx, req))
		pub.AssertExpectations(t)
	})

	t.Run("smtp not configured", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("IsConfigured").Return(false)

		err := usecase.NewContactUsecase(mailer, new(MockPublisher)).SubmitContactMessage(ctx, req)
		requireAppError(t, err, http.StatusServiceUnavailable)
	})

	t.Run("queue full", func(t *testing.T) {
		mailer := new(MockMailer)
		pub := new(MockPublisher)
		mailer.On("IsConfigured").Return(true)
		pub.On("Publish", ctx, domain.EventContactSubmitted, mock.Anything).Return(errors.New("queue full"))

		err := usecase.NewContactUsecase(mailer, pub).SubmitContactMessage(ctx, req)
		requireAppError(t, err, http.StatusServiceUnavailable)
	})

	t.Run("blank fields", func(t *testing.T) {
		err := usecase.NewContactUsecase(new(MockMailer), new(MockPublisher)).SubmitContactMessage(ctx, &domain.ContactRequest{Name: "  "})
		requireAppError(t, err, http.StatusBadRequest)
	})
}

func TestDeliverContactMessage(t *testing.T) {
	ctx := context.Background()
	mailer := new(MockMailer)
	mailer.On("Inbox").Return("hello@jobboard.local")
	mailer.On("Send", ctx, mock.MatchedBy(func(m email.Message) bool {
		return len(m.To) == 1 && m.To[0] == "hello@jobboard.local" && m.ReplyTo == "jane@example.com"
	})).Return(nil)

	err := usecase.NewContactUsecase(mailer, new(MockPublisher)).DeliverContactMessage(ctx, &domain.ContactRequest{
		Name: "Jane", Email: "jane@example.com", Subject: "Hi", Message: "Hello there",
	})
	assert.NoError(t, err)
	mailer.AssertExpectations(t)
}
