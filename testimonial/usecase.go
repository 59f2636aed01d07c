package testimonial

import (
	"context"
	"time"
)

type Service interface {
	AddTestimonial(ctx context.Context, t Testimonial) (Testimonial, error)
	ListTestimonials(ctx context.Context, limit int) ([]Testimonial, error)
}

// Repository assigns ID and CreatedAt on create and lists newest first.
// A limit <= 0 returns every record.
type Repository interface {
	CreateTestimonial(ctx context.Context, t Testimonial) (Testimonial, error)
	AllTestimonials(ctx context.Context, limit int) ([]Testimonial, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) AddTestimonial(ctx context.Context, t Testimonial) (Testimonial, error) {
	if err := t.Validate(); err != nil {
		return Testimonial{}, err
	}

	// the store owns these
	t.ID = ""
	t.CreatedAt = time.Time{}

	return uc.r.CreateTestimonial(ctx, t)
}

func (uc *Usecase) ListTestimonials(ctx context.Context, limit int) ([]Testimonial, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}

	return uc.r.AllTestimonials(ctx, limit)
}
