package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

type ClientService struct {
	repo  ports.ClientRepository
	cache ports.ListCache
	log   zerolog.Logger
}

// NewClientService returns the client CRUD module. cache may be nil.
func NewClientService(repo ports.ClientRepository, cache ports.ListCache, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, cache: cache, log: log}
}

func (s *ClientService) Add(ctx context.Context, c domain.Client) (string, error) {
	if err := validate("add client", c); err != nil {
		return "", err
	}

	c.ID = ""
	c.CreatedAt = utcNow()
	id, err := s.repo.Insert(ctx, &c)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to add client")
		return "", domain.Wrap("add client", "Failed to add client", err)
	}
	invalidate(ctx, s.cache, cacheKeyClients, s.log)

	s.log.Info().Str("client_id", id).Msg("client added")
	return id, nil
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	clients, err := listCached(ctx, s.cache, cacheKeyClients, s.log, func() ([]*domain.Client, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch clients")
		return nil, domain.Wrap("list clients", "Failed to fetch clients", err)
	}
	return clients, nil
}

func (s *ClientService) Update(ctx context.Context, id string, patch domain.ClientPatch) error {
	if blank(id) {
		return domain.ErrInvalidID
	}
	if patch.Empty() {
		return domain.E(domain.KindValidation, "update client", "nothing to update", nil)
	}
	if err := validate("update client", patch); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		s.log.Error().Err(err).Str("client_id", id).Msg("failed to update client")
		return domain.Wrap("update client", "Failed to update client", err)
	}
	invalidate(ctx, s.cache, cacheKeyClients, s.log)
	return nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if blank(id) {
		return domain.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("client_id", id).Msg("failed to delete client")
		return domain.Wrap("delete client", "Failed to delete client", err)
	}
	invalidate(ctx, s.cache, cacheKeyClients, s.log)
	return nil
}
