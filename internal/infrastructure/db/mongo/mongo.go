package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Collection names.
const (
	collectionUsers       = "users"
	collectionClients     = "clients"
	collectionMembers     = "members"
	collectionProjects    = "projects"
	collectionCredentials = "credentials"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	AppName  string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := db.Collection(collectionCredentials).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("credentials index: %w", err)
	}

	_, err = db.Collection(collectionProjects).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "creationTime", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("projects index: %w", err)
	}
	return nil
}

// objectID parses a hex document id. Ids that are not ObjectIDs match nothing.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// insertedID returns the hex form of the id generated by InsertOne.
func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}

// setDoc accumulates the $set stage of a partial update.
type setDoc bson.M

func (s setDoc) str(key string, v *string) {
	if v != nil {
		s[key] = *v
	}
}

func (s setDoc) val(key string, v any, present bool) {
	if present {
		s[key] = v
	}
}

func (s setDoc) update() bson.M { return bson.M{"$set": bson.M(s)} }

// findAll decodes every document of col, newest first.
func findAll[T any](ctx context.Context, col *mongo.Collection) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "creationTime", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*T, 0)
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, cur.Err()
}
