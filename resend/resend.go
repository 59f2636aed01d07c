package resend

import (
	"context"
	"fmt"
	"moviedex/contact"
	"moviedex/errs"
	"moviedex/pkg/logger"
	"strings"

	resendgo "github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured = errs.Errorf(errs.ENOTIMPLEMENTED, "contact relay not configured")
	ErrUnavailable   = errs.Errorf(errs.EUNAVAILABLE, "contact relay unavailable")
)

// Sender is the part of the Resend emails API the relay needs.
type Sender interface {
	SendWithContext(ctx context.Context, params *resendgo.SendEmailRequest) (*resendgo.SendEmailResponse, error)
}

type Options struct {
	APIKey string
	From   string
	To     string
	Logger *zap.SugaredLogger
}

// Relay mails contact messages to the site inbox. Replies go to the sender.
type Relay struct {
	sender Sender
	from   string
	to     string
	logger *zap.SugaredLogger
}

func New(opts Options) *Relay {
	var sender Sender
	if opts.APIKey != "" {
		sender = resendgo.NewClient(opts.APIKey).Emails
	}
	return NewWithSender(sender, opts)
}

func NewWithSender(sender Sender, opts Options) *Relay {
	log := opts.Logger
	if log == nil {
		log = logger.NOOPLogger
	}
	return &Relay{sender: sender, from: opts.From, to: opts.To, logger: log}
}

func (r *Relay) Deliver(ctx context.Context, m contact.Message) error {
	if r.sender == nil || r.from == "" || r.to == "" {
		return ErrNotConfigured
	}

	params := &resendgo.SendEmailRequest{
		From:    r.from,
		To:      []string{r.to},
		ReplyTo: m.Email,
		Subject: fmt.Sprintf("New contact message from %s", strings.TrimSpace(m.Name)),
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", m.Name, m.Email, m.Message),
	}

	resp, err := r.sender.SendWithContext(ctx, params)
	if err != nil {
		r.logger.Errorw("failed to send contact email", "error", err)
		return ErrUnavailable
	}

	r.logger.Infow("contact email sent", "id", resp.Id)
	return nil
}
