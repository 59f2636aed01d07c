package resend_test

import (
	"context"
	"errors"
	"moviedex/contact"
	"moviedex/resend"
	"testing"

	resendgo "github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendWithContext(ctx context.Context, params *resendgo.SendEmailRequest) (*resendgo.SendEmailResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resendgo.SendEmailResponse), args.Error(1)
}

var msg = contact.Message{Name: "Ada", Email: "ada@example.com", Message: "Love the trending page"}

func TestRelay_Deliver(t *testing.T) {
	opts := resend.Options{From: "Moviedex <noreply@moviedex.dev>", To: "hello@moviedex.dev"}

	t.Run("sends to the inbox with reply-to set", func(t *testing.T) {
		sender := new(MockSender)
		relay := resend.NewWithSender(sender, opts)
		sender.On("SendWithContext", mock.Anything, mock.MatchedBy(func(p *resendgo.SendEmailRequest) bool {
			return p.From == opts.From &&
				len(p.To) == 1 && p.To[0] == opts.To &&
				p.ReplyTo == msg.Email &&
				p.Subject == "New contact message from Ada"
		})).Return(&resendgo.SendEmailResponse{Id: "email-1"}, nil).Once()

		err := relay.Deliver(context.Background(), msg)

		assert.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("maps send failures to unavailable", func(t *testing.T) {
		sender := new(MockSender)
		relay := resend.NewWithSender(sender, opts)
		sender.On("SendWithContext", mock.Anything, mock.Anything).Return(nil, errors.New("rate limited")).Once()

		err := relay.Deliver(context.Background(), msg)

		assert.Equal(t, resend.ErrUnavailable, err)
	})

	t.Run("refuses to send without configuration", func(t *testing.T) {
		relay := resend.New(resend.Options{})

		err := relay.Deliver(context.Background(), msg)

		assert.Equal(t, resend.ErrNotConfigured, err)
	})
}
