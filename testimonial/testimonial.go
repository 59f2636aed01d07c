package testimonial

import (
	"moviedex/errs"
	"time"
)

var (
	ErrNameAndFeedbackRequired = errs.Errorf(errs.EINVALID, "Name and feedback are required.")
	ErrInvalidLimit            = errs.Errorf(errs.EINVALID, "limit must be a positive integer")
)

// Testimonial is a piece of user feedback shown on the landing page.
// Role is an open label ("Film Lover", "Film Critic", ...) and Avatar is
// whatever the client sent; neither is derived or checked here.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Role      string    `json:"role"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t Testimonial) Validate() error {
	if t.Name == "" || t.Feedback == "" {
		return ErrNameAndFeedbackRequired
	}

	return nil
}
