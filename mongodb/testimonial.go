package mongodb

import (
	"context"
	"fmt"
	"moviedex/testimonial"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestimonialDocument is the stored shape. createdAt and updatedAt follow the
// field names the existing collection already uses.
type TestimonialDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Avatar    string             `bson:"avatar"`
	Role      string             `bson:"role"`
	Feedback  string             `bson:"feedback"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d TestimonialDocument) toTestimonial() testimonial.Testimonial {
	return testimonial.Testimonial{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Avatar:    d.Avatar,
		Role:      d.Role,
		Feedback:  d.Feedback,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type Option func(*TestimonialRepository)

// WithClock replaces time.Now as the source of creation times.
func WithClock(now func() time.Time) Option {
	return func(r *TestimonialRepository) {
		r.now = now
	}
}

// TestimonialRepository implements testimonial.Repository on a collection.
type TestimonialRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewTestimonialRepository(db *mongo.Database, collection string, opts ...Option) *TestimonialRepository {
	r := &TestimonialRepository{
		collection: db.Collection(collection),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EnsureIndexes creates the index backing the newest-first listing.
func (r *TestimonialRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create testimonial indexes: %w", err)
	}
	return nil
}

func (r *TestimonialRepository) CreateTestimonial(ctx context.Context, t testimonial.Testimonial) (testimonial.Testimonial, error) {
	// BSON dates keep milliseconds
	now := r.now().UTC().Truncate(time.Millisecond)
	doc := TestimonialDocument{
		ID:        primitive.NewObjectID(),
		Name:      t.Name,
		Avatar:    t.Avatar,
		Role:      t.Role,
		Feedback:  t.Feedback,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return testimonial.Testimonial{}, fmt.Errorf("failed to insert testimonial: %w", err)
	}

	return doc.toTestimonial(), nil
}

func (r *TestimonialRepository) AllTestimonials(ctx context.Context, limit int) ([]testimonial.Testimonial, error) {
	// _id breaks ties between documents created in the same millisecond
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find testimonials: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []TestimonialDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode testimonials: %w", err)
	}

	testimonials := make([]testimonial.Testimonial, len(docs))
	for i, doc := range docs {
		testimonials[i] = doc.toTestimonial()
	}
	return testimonials, nil
}
