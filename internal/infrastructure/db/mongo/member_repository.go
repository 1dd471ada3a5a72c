package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/portail/consulting-portal/internal/core/domain"
)

type MemberRepository struct {
	col *mongo.Collection
}

func NewMemberRepository(db *mongo.Database) *MemberRepository {
	return &MemberRepository{col: db.Collection(collectionMembers)}
}

func (r *MemberRepository) Insert(ctx context.Context, m *domain.Member) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (r *MemberRepository) List(ctx context.Context) ([]*domain.Member, error) {
	return findAll[domain.Member](ctx, r.col)
}

func (r *MemberRepository) Update(ctx context.Context, id string, p domain.MemberPatch) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrMemberNotFound
	}

	set := setDoc{"lastUpdated": time.Now().UTC()}
	set.str("name", p.Name)
	set.str("email", p.Email)
	set.str("experience", p.Experience)
	set.str("position", p.Position)
	set.str("speciality", p.Speciality)
	set.str("diploma", p.Diploma)
	set.str("projects", p.Projects)
	set.str("service", p.Service)
	set.str("certification", p.Certification)
	set.str("cvShort", p.CVShort)
	set.str("cvLong", p.CVLong)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, set.update())
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrMemberNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}
