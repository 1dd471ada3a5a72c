package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

type MemberService struct {
	repo    ports.MemberRepository
	storage ports.ObjectStorage
	cache   ports.ListCache
	log     zerolog.Logger
}

// NewMemberService returns the member CRUD module. cache may be nil.
func NewMemberService(repo ports.MemberRepository, storage ports.ObjectStorage, cache ports.ListCache, log zerolog.Logger) *MemberService {
	return &MemberService{repo: repo, storage: storage, cache: cache, log: log}
}

// Add validates the record, uploads pending attachments under members/ and
// stores the record with their locators.
func (s *MemberService) Add(ctx context.Context, in ports.CreateMemberInput) (string, error) {
	m := in.Member
	if err := validate("add member", m); err != nil {
		return "", err
	}
	if !in.Files.Certification.Present() {
		return "", domain.ValidationError("add member", []string{"certification is required"})
	}

	var err error
	if m.Certification, err = resolveAttachment(ctx, s.storage, domain.DirMembers, in.Files.Certification); err != nil {
		return "", s.failed("add member", "Failed to add member", err)
	}
	if m.CVShort, err = resolveAttachment(ctx, s.storage, domain.DirMembers, in.Files.CVShort); err != nil {
		return "", s.failed("add member", "Failed to add member", err)
	}
	if m.CVLong, err = resolveAttachment(ctx, s.storage, domain.DirMembers, in.Files.CVLong); err != nil {
		return "", s.failed("add member", "Failed to add member", err)
	}

	m.ID = ""
	m.CreatedAt = utcNow()
	id, err := s.repo.Insert(ctx, &m)
	if err != nil {
		return "", s.failed("add member", "Failed to add member", err)
	}
	invalidate(ctx, s.cache, cacheKeyMembers, s.log)

	s.log.Info().Str("member_id", id).Msg("member added")
	return id, nil
}

func (s *MemberService) List(ctx context.Context) ([]*domain.Member, error) {
	members, err := listCached(ctx, s.cache, cacheKeyMembers, s.log, func() ([]*domain.Member, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, s.failed("list members", "Failed to fetch members", err)
	}
	return members, nil
}

func (s *MemberService) Update(ctx context.Context, id string, in ports.UpdateMemberInput) error {
	if blank(id) {
		return domain.ErrInvalidID
	}
	patch := in.Patch
	if err := validate("update member", patch); err != nil {
		return err
	}

	var err error
	if patch.Certification, err = resolveOptional(ctx, s.storage, domain.DirMembers, in.Files.Certification); err != nil {
		return s.failed("update member", "Failed to update member", err)
	}
	if patch.CVShort, err = resolveOptional(ctx, s.storage, domain.DirMembers, in.Files.CVShort); err != nil {
		return s.failed("update member", "Failed to update member", err)
	}
	if patch.CVLong, err = resolveOptional(ctx, s.storage, domain.DirMembers, in.Files.CVLong); err != nil {
		return s.failed("update member", "Failed to update member", err)
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return s.failed("update member", "Failed to update member", err)
	}
	invalidate(ctx, s.cache, cacheKeyMembers, s.log)
	return nil
}

func (s *MemberService) Delete(ctx context.Context, id string) error {
	if blank(id) {
		return domain.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.failed("delete member", "Failed to delete member", err)
	}
	invalidate(ctx, s.cache, cacheKeyMembers, s.log)
	return nil
}

func (s *MemberService) failed(op, message string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg(message)
	return domain.Wrap(op, message, err)
}
