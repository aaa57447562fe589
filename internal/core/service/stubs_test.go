package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
)

// Ids starting with "bad" are treated as malformed by every stub repository.
func malformed(id string) bool { return strings.HasPrefix(id, "bad") }

// --- users ---

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	seq       int
	deleteErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) add(u domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = cloneUser(&u)
	return cloneUser(&u)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u%d", r.seq)
	r.users[c.ID] = cloneUser(c)
	return c, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if malformed(id) {
		return nil, domain.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// --- posts ---

type stubPostRepo struct {
	mu        sync.Mutex
	posts     map[string]*domain.Post
	seq       int
	deleteErr error
	saves     int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	c.User = nil
	c.Likes = append([]domain.Like{}, p.Likes...)
	c.Comments = append([]domain.Comment{}, p.Comments...)
	return &c
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := clonePost(p)
	c.ID = fmt.Sprintf("p%d", r.seq)
	r.posts[c.ID] = clonePost(c)
	return c, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	if malformed(id) {
		return nil, domain.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) List(_ context.Context) ([]*domain.Post, error) {
	return r.filter(func(*domain.Post) bool { return true }), nil
}

func (r *stubPostRepo) ListByAuthor(_ context.Context, userID string) ([]*domain.Post, error) {
	if malformed(userID) {
		return nil, domain.ErrInvalidID
	}
	return r.filter(func(p *domain.Post) bool { return p.UserID == userID }), nil
}

func (r *stubPostRepo) filter(keep func(*domain.Post) bool) []*domain.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if keep(p) {
			out = append(out, clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (r *stubPostRepo) Save(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[p.ID]; !ok {
		return domain.ErrPostNotFound
	}
	r.saves++
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) DeleteByAuthor(_ context.Context, userID string) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, p := range r.posts {
		if p.UserID == userID {
			delete(r.posts, id)
			n++
		}
	}
	return n, nil
}

func (r *stubPostRepo) stored(id string) *domain.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		return clonePost(p)
	}
	return nil
}

// --- profiles ---

type stubProfileRepo struct {
	mu        sync.Mutex
	profiles  map[string]*domain.Profile
	seq       int
	deleteErr error
	finds     int
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	c := *p
	c.User = nil
	c.Skills = append([]string{}, p.Skills...)
	c.Experience = append([]domain.Experience{}, p.Experience...)
	c.Education = append([]domain.Education{}, p.Education...)
	return &c
}

func (r *stubProfileRepo) FindByUser(_ context.Context, userID string) (*domain.Profile, error) {
	if malformed(userID) {
		return nil, domain.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) List(_ context.Context) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.UserID]; ok {
		return nil, domain.ErrProfileExists
	}
	r.seq++
	c := cloneProfile(p)
	c.ID = fmt.Sprintf("pr%d", r.seq)
	r.profiles[c.UserID] = cloneProfile(c)
	return c, nil
}

func (r *stubProfileRepo) Update(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.UserID]; !ok {
		return nil, domain.ErrProfileNotFound
	}
	r.profiles[p.UserID] = cloneProfile(p)
	return cloneProfile(p), nil
}

// pausingProfileRepo holds the first FindByUser after it has read the
// profile, until release is closed.
type pausingProfileRepo struct {
	*stubProfileRepo
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (r *pausingProfileRepo) FindByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := r.stubProfileRepo.FindByUser(ctx, userID)
	r.once.Do(func() {
		close(r.loaded)
		<-r.release
	})
	return p, err
}

func (r *stubProfileRepo) DeleteByUser(_ context.Context, userID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, userID)
	return nil
}

// --- collaborators ---

// directSerializer runs mutations inline and records their keys.
type directSerializer struct {
	mu   sync.Mutex
	keys []string
}

func (s *directSerializer) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	s.keys = append(s.keys, key)
	s.mu.Unlock()
	return fn(ctx)
}

// lockingSerializer runs mutations sharing a key one at a time.
type lockingSerializer struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (s *lockingSerializer) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn(ctx)
}

// stubCache mirrors the generation fencing of the Redis cache.
type stubCache struct {
	mu            sync.Mutex
	entries       map[string]*domain.Profile
	gens          map[string]int64
	invalidations []string
	fenced        int
	getErr        error
	fillErr       error
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*domain.Profile), gens: make(map[string]int64)}
}

func (c *stubCache) Get(_ context.Context, ownerID string) (*domain.Profile, int64, error) {
	if c.getErr != nil {
		return nil, 0, c.getErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[ownerID], c.gens[ownerID], nil
}

func (c *stubCache) Fill(_ context.Context, p *domain.Profile, gen int64) error {
	if c.fillErr != nil {
		return c.fillErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[p.UserID] != gen {
		c.fenced++
		return nil
	}
	c.entries[p.UserID] = p
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, ownerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[ownerID]++
	delete(c.entries, ownerID)
	c.invalidations = append(c.invalidations, ownerID)
	return nil
}

func (c *stubCache) cached(ownerID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[ownerID]
	return ok
}

// stubIssuer hands out "token-<id>".
type stubIssuer struct{}

func (stubIssuer) Issue(userID string) (string, error) { return "token-" + userID, nil }
