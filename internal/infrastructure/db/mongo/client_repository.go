package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/portail/consulting-portal/internal/core/domain"
)

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

func (r *ClientRepository) Insert(ctx context.Context, c *domain.Client) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	return findAll[domain.Client](ctx, r.col)
}

func (r *ClientRepository) Update(ctx context.Context, id string, p domain.ClientPatch) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": p})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
