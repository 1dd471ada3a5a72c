package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/portail/consulting-portal/internal/core/domain"
)

type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Project
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	return findAll[domain.Project](ctx, r.col)
}

func (r *ProjectRepository) Update(ctx context.Context, id string, p domain.ProjectPatch) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrProjectNotFound
	}

	set := setDoc{"lastUpdated": time.Now().UTC()}
	set.str("projectName", p.Name)
	set.val("clientName", p.Clients, p.Clients != nil)
	set.val("mazars", p.FirmContacts, p.FirmContacts != nil)
	set.val("interventionTeam", p.Team, p.Team != nil)
	set.str("projectDuration", p.Duration)
	set.str("completionDate", p.CompletionDate)
	set.str("orderYear", p.OrderYear)
	set.str("startDate", p.StartDate)
	set.str("partnerNames", p.PartnerNames)
	set.str("serviceDescription", p.ServiceDescription)
	set.str("missionDeliverables", p.MissionDeliverables)
	set.str("technicalOffer", p.TechnicalOffer)
	set.str("BDC", p.PurchaseOrder)
	set.str("PV", p.MeetingMinutes)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, set.update())
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Delete reports false without error when no document matched.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
