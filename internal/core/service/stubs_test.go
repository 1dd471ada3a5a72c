package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var errBackend = errors.New("backend unavailable")

// ---------------------------------------------------------------------------
// Identity provider
// ---------------------------------------------------------------------------

type stubIdentity struct {
	byEmail     map[string]string // email -> id
	passwords   map[string]string // id -> password
	calls       int
	registerErr error
	deleteErr   error
	deleted     []string
	seq         int
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{byEmail: map[string]string{}, passwords: map[string]string{}}
}

func (s *stubIdentity) Register(_ context.Context, email, password string) (string, error) {
	s.calls++
	if s.registerErr != nil {
		return "", s.registerErr
	}
	if _, ok := s.byEmail[email]; ok {
		return "", domain.ErrUserExists
	}
	s.seq++
	id := fmt.Sprintf("uid-%d", s.seq)
	s.byEmail[email] = id
	s.passwords[id] = password
	return id, nil
}

func (s *stubIdentity) SignIn(_ context.Context, email, password string) (string, error) {
	s.calls++
	id, ok := s.byEmail[email]
	if !ok || s.passwords[id] != password {
		return "", domain.ErrInvalidCredentials
	}
	return id, nil
}

func (s *stubIdentity) UpdateEmail(_ context.Context, id, email string) error {
	for e, uid := range s.byEmail {
		if uid == id {
			delete(s.byEmail, e)
		}
	}
	s.byEmail[email] = id
	return nil
}

func (s *stubIdentity) UpdatePassword(_ context.Context, id, password string) error {
	s.passwords[id] = password
	return nil
}

func (s *stubIdentity) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	createErr error
	deleteErr error
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Get(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, p domain.UserPatch) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.IsOnline != nil {
		u.IsOnline = *p.IsOnline
	}
	if p.Roles != nil {
		u.Roles = *p.Roles
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.users, id)
	return nil
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

type stubSessions struct {
	data    map[string][]byte
	readErr error
}

func newStubSessions() *stubSessions {
	return &stubSessions{data: map[string][]byte{}}
}

func (s *stubSessions) Write(_ context.Context, sess *domain.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.data[sess.ID] = b
	return nil
}

func (s *stubSessions) Read(_ context.Context, id string) (*domain.Session, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	b, ok := s.data[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *stubSessions) Clear(_ context.Context, id string) error {
	delete(s.data, id)
	return nil
}

// ---------------------------------------------------------------------------
// Object storage
// ---------------------------------------------------------------------------

type stubStorage struct {
	objects map[string][]byte
	puts    []string
	putErr  error
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: map[string][]byte{}}
}

func (s *stubStorage) Put(_ context.Context, path string, u *domain.Upload) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	b, err := io.ReadAll(u.Body)
	if err != nil {
		return "", err
	}
	s.objects[path] = b
	s.puts = append(s.puts, path)
	return "mem://" + path, nil
}

func (s *stubStorage) Get(_ context.Context, path string) (*ports.Object, error) {
	b, ok := s.objects[path]
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	return &ports.Object{Body: io.NopCloser(bytes.NewReader(b)), Size: int64(len(b))}, nil
}

func upload(name, content string) domain.Attachment {
	return domain.Attachment{Upload: &domain.Upload{Name: name, Body: bytes.NewBufferString(content)}}
}

// ---------------------------------------------------------------------------
// List cache
// ---------------------------------------------------------------------------

type stubCache struct {
	data        map[string][]byte
	versions    map[string]int64
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{data: map[string][]byte{}, versions: map[string]int64{}}
}

func (c *stubCache) entry(key string, version int64) string {
	return fmt.Sprintf("%s:%d", key, version)
}

func (c *stubCache) Version(_ context.Context, key string) (int64, error) {
	return c.versions[key], nil
}

func (c *stubCache) Get(_ context.Context, key string, version int64, dst any) (bool, error) {
	b, ok := c.data[c.entry(key, version)]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *stubCache) Set(_ context.Context, key string, version int64, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[c.entry(key, version)] = b
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, key string) error {
	c.versions[key]++
	c.invalidated = append(c.invalidated, key)
	return nil
}

// ---------------------------------------------------------------------------
// Entity repositories
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	items     map[string]*domain.Client
	seq       int
	listCalls int
	failWith  error
	// afterRead runs once the listing is copied, before it is returned.
	afterRead func()
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{items: map[string]*domain.Client{}}
}

func (r *stubClientRepo) Insert(_ context.Context, c *domain.Client) (string, error) {
	if r.failWith != nil {
		return "", r.failWith
	}
	r.seq++
	clone := *c
	clone.ID = fmt.Sprintf("client-%d", r.seq)
	r.items[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	r.listCalls++
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]*domain.Client, 0, len(r.items))
	for _, c := range r.items {
		clone := *c
		out = append(out, &clone)
	}
	if hook := r.afterRead; hook != nil {
		r.afterRead = nil
		hook()
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, id string, p domain.ClientPatch) error {
	c, ok := r.items[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Sector != nil {
		c.Sector = *p.Sector
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.items, id)
	return nil
}

type stubMemberRepo struct {
	items map[string]*domain.Member
	seq   int
}

func newStubMemberRepo() *stubMemberRepo {
	return &stubMemberRepo{items: map[string]*domain.Member{}}
}

func (r *stubMemberRepo) Insert(_ context.Context, m *domain.Member) (string, error) {
	r.seq++
	clone := *m
	clone.ID = fmt.Sprintf("member-%d", r.seq)
	r.items[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubMemberRepo) List(_ context.Context) ([]*domain.Member, error) {
	out := make([]*domain.Member, 0, len(r.items))
	for _, m := range r.items {
		clone := *m
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubMemberRepo) Update(_ context.Context, id string, p domain.MemberPatch) error {
	m, ok := r.items[id]
	if !ok {
		return domain.ErrMemberNotFound
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&m.Name, p.Name)
	set(&m.Email, p.Email)
	set(&m.Experience, p.Experience)
	set(&m.Position, p.Position)
	set(&m.Speciality, p.Speciality)
	set(&m.Diploma, p.Diploma)
	set(&m.Projects, p.Projects)
	set(&m.Service, p.Service)
	set(&m.Certification, p.Certification)
	set(&m.CVShort, p.CVShort)
	set(&m.CVLong, p.CVLong)
	return nil
}

func (r *stubMemberRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type stubProjectRepo struct {
	items     map[string]*domain.Project
	seq       int
	deleteErr error
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{items: map[string]*domain.Project{}}
}

func (r *stubProjectRepo) Insert(_ context.Context, p *domain.Project) (string, error) {
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("project-%d", r.seq)
	r.items[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubProjectRepo) Get(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0, len(r.items))
	for _, p := range r.items {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, id string, p domain.ProjectPatch) error {
	cur, ok := r.items[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.CompletionDate != nil {
		cur.CompletionDate = *p.CompletionDate
	}
	if p.Team != nil {
		cur.Team = p.Team
	}
	if p.TechnicalOffer != nil {
		cur.TechnicalOffer = *p.TechnicalOffer
	}
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
