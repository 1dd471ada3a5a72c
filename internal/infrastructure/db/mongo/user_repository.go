package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/portail/consulting-portal/internal/core/domain"
)

// UserRepository stores profile documents keyed by credential id.
type UserRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		col: db.Collection(collectionUsers),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create writes the profile under u.ID, replacing any previous document.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u, options.Replace().SetUpsert(true))
	return err
}

func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return findAll[domain.User](ctx, r.col)
}

// Update applies the patch and refreshes lastSeen.
func (r *UserRepository) Update(ctx context.Context, id string, p domain.UserPatch) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := setDoc{"lastSeen": r.now()}
	set.str("username", p.Username)
	set.str("email", p.Email)
	set.str("img", p.Avatar)
	set.str("bio", p.Bio)
	if p.IsOnline != nil {
		set["isOnline"] = *p.IsOnline
	}
	if p.Roles != nil {
		set["userRole"] = *p.Roles
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, set.update())
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
