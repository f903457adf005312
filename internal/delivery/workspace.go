package delivery

import (
	"context"
	"sync"
	"time"

	"catalog_ui/internal/domain"
	"catalog_ui/internal/usecase"

	"github.com/sirupsen/logrus"
)

// Workspace holds the view models of one browser session. Handlers hold mu for the
// whole action, so the network calls of one session never interleave.
type Workspace struct {
	mu       sync.Mutex
	lastSeen time.Time

	Notifier *usecase.MutationNotifier
	Form     *usecase.RegistrationForm
	List     *usecase.ListView
	Search   *usecase.ListView
}

func newWorkspace(catalog domain.Catalog, categories *usecase.CategoryStore, logger *logrus.Logger) *Workspace {
	notifier := usecase.NewMutationNotifier()
	list := usecase.NewListView(usecase.ModeClientFilter, catalog, categories, logger)
	notifier.Subscribe(list.OnMutationCommitted)

	return &Workspace{
		Notifier: notifier,
		Form:     usecase.NewRegistrationForm(catalog, notifier, logger),
		List:     list,
		Search:   usecase.NewListView(usecase.ModeServerSearch, catalog, categories, logger),
	}
}

type WorkspaceStore struct {
	catalog    domain.Catalog
	categories *usecase.CategoryStore
	log        *logrus.Logger
	ttl        time.Duration
	now        func() time.Time

	mu    sync.Mutex
	items map[string]*Workspace
}

func NewWorkspaceStore(catalog domain.Catalog, categories *usecase.CategoryStore, ttl time.Duration, logger *logrus.Logger) *WorkspaceStore {
	return &WorkspaceStore{
		catalog:    catalog,
		categories: categories,
		log:        logger,
		ttl:        ttl,
		now:        time.Now,
		items:      make(map[string]*Workspace),
	}
}

// Acquire returns the locked workspace of session id, creating it on first use.
// The caller must call the returned release function.
func (s *WorkspaceStore) Acquire(id string) (*Workspace, func()) {
	s.mu.Lock()
	ws, ok := s.items[id]
	if !ok {
		ws = newWorkspace(s.catalog, s.categories, s.log)
		s.items[id] = ws
		s.log.Debugf("WorkspaceStore: Created workspace for session %s", id)
	}
	ws.lastSeen = s.now()
	s.mu.Unlock()

	ws.mu.Lock()
	return ws, ws.mu.Unlock
}

// Sweep drops workspaces idle for longer than the TTL and returns how many were dropped.
func (s *WorkspaceStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, ws := range s.items {
		if ws.lastSeen.Before(cutoff) {
			delete(s.items, id)
			removed++
		}
	}
	if removed > 0 {
		s.log.Infof("WorkspaceStore: Evicted %d idle sessions", removed)
	}
	return removed
}

// Known reports whether session id has a live workspace.
func (s *WorkspaceStore) Known(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[id]
	return ok
}

func (s *WorkspaceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// RunJanitor sweeps every interval until ctx is done.
func (s *WorkspaceStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
