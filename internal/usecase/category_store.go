package usecase

import (
	"context"
	"sync"

	"catalog_ui/internal/domain"

	"github.com/sirupsen/logrus"
)

// CategoryStore is the process-wide, read-mostly category list. It is fetched once;
// an empty answer (which is also what a failed fetch looks like) is fetched again on
// the next Load.
type CategoryStore struct {
	catalog domain.Catalog
	log     *logrus.Logger

	loadMu     sync.Mutex
	mu         sync.RWMutex
	categories []domain.Category
	byID       map[int]string
	loaded     bool
}

func NewCategoryStore(catalog domain.Catalog, logger *logrus.Logger) *CategoryStore {
	return &CategoryStore{
		catalog: catalog,
		log:     logger,
		byID:    map[int]string{},
	}
}

func (s *CategoryStore) Load(ctx context.Context) []domain.Category {
	if s.isLoaded() {
		return s.All()
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.isLoaded() {
		return s.All()
	}

	categories := s.catalog.ListCategories(ctx)
	byID := make(map[int]string, len(categories))
	for _, c := range categories {
		byID[c.ID] = c.Name
	}

	s.mu.Lock()
	s.categories = categories
	s.byID = byID
	s.loaded = len(categories) > 0
	s.mu.Unlock()

	if len(categories) == 0 {
		s.log.Warn("CategoryStore: No categories available, will retry on next load")
	} else {
		s.log.Infof("CategoryStore: Loaded %d categories", len(categories))
	}
	return s.All()
}

func (s *CategoryStore) isLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// All returns a copy of the categories loaded so far.
func (s *CategoryStore) All() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category{}, s.categories...)
}

func (s *CategoryStore) Name(id int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.byID[id]
	return name, ok
}
