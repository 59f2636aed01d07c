package contact

import (
	"moviedex/errs"
	"strings"
)

var (
	ErrInvalidName    = errs.Errorf(errs.EINVALID, "invalid name")
	ErrInvalidEmail   = errs.Errorf(errs.EINVALID, "invalid email")
	ErrInvalidMessage = errs.Errorf(errs.EINVALID, "invalid message")
)

// Message is a note sent from the contact page to the site owner.
type Message struct {
	Name    string
	Email   string
	Message string
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrInvalidName
	}

	if !strings.Contains(m.Email, "@") || strings.TrimSpace(m.Email) != m.Email {
		return ErrInvalidEmail
	}

	if strings.TrimSpace(m.Message) == "" {
		return ErrInvalidMessage
	}

	return nil
}
