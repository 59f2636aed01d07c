package contact

import "context"

type Service interface {
	SendMessage(ctx context.Context, m Message) error
}

// Relay delivers a contact message to its destination (form relay, mailbox).
type Relay interface {
	Deliver(ctx context.Context, m Message) error
}

type Usecase struct {
	r Relay
}

func NewUsecase(r Relay) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) SendMessage(ctx context.Context, m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return uc.r.Deliver(ctx, m)
}
