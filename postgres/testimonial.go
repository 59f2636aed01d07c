package postgres

import (
	"context"
	"moviedex/testimonial"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestimonialModel represents the database model for testimonials
type TestimonialModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Avatar    string    `gorm:"not null"`
	Role      string    `gorm:"not null"`
	Feedback  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (TestimonialModel) TableName() string {
	return "testimonials"
}

func (m TestimonialModel) toTestimonial() testimonial.Testimonial {
	return testimonial.Testimonial{
		ID:        m.ID,
		Name:      m.Name,
		Avatar:    m.Avatar,
		Role:      m.Role,
		Feedback:  m.Feedback,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// TestimonialRepository implements testimonial.Repository interface
type TestimonialRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTestimonialRepository(db *gorm.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db, now: time.Now}
}

// CreateTestimonial assigns a UUID and the insertion time, then stores the row.
func (r *TestimonialRepository) CreateTestimonial(ctx context.Context, t testimonial.Testimonial) (testimonial.Testimonial, error) {
	model := TestimonialModel{
		ID:       uuid.NewString(),
		Name:     t.Name,
		Avatar:   t.Avatar,
		Role:     t.Role,
		Feedback: t.Feedback,
		// timestamptz keeps microseconds
		CreatedAt: r.now().UTC().Truncate(time.Microsecond),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return testimonial.Testimonial{}, err
	}

	return model.toTestimonial(), nil
}

func (r *TestimonialRepository) AllTestimonials(ctx context.Context, limit int) ([]testimonial.Testimonial, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var models []TestimonialModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	testimonials := make([]testimonial.Testimonial, len(models))
	for i, model := range models {
		testimonials[i] = model.toTestimonial()
	}
	return testimonials, nil
}
