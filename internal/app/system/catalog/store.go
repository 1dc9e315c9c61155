package catalog

import (
	"sync"
	"time"

	"github.com/dalemusser/recursosayuda/internal/domain/models"
	"go.uber.org/zap"
)

// Store memoizes one load of a fixed path. The first call to Get performs
// the load; later calls return the same rows, or the same error.
// Rows are shared and must be treated as read-only.
type Store struct {
	path string
	opts Options
	log  *zap.Logger

	once sync.Once
	cat  Catalog
	byID map[string]int
	err  error
}

// NewStore constructs a Store for path. Nothing is read until Get.
func NewStore(path string, opts Options, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, opts: opts, log: logger}
}

// Get returns the memoized catalog, loading it on first use.
func (s *Store) Get() (Catalog, error) {
	s.once.Do(func() {
		s.cat, s.err = Load(s.path, s.opts)
		if s.err != nil {
			s.log.Error("resource table load failed",
				zap.String("path", s.path),
				zap.Error(s.err))
			return
		}
		s.byID = make(map[string]int, len(s.cat.Rows))
		for i, r := range s.cat.Rows {
			if _, dup := s.byID[r.ID]; !dup {
				s.byID[r.ID] = i
			}
		}
		s.log.Info("resource table loaded",
			zap.String("path", s.path),
			zap.String("encoding", s.cat.Encoding),
			zap.Int("rows", len(s.cat.Rows)))
	})
	return s.cat, s.err
}

// Rows returns the loaded rows, or nil if the load failed.
func (s *Store) Rows() []models.Resource {
	cat, err := s.Get()
	if err != nil {
		return nil
	}
	return cat.Rows
}

// ByID looks up a row by its synthetic identifier.
func (s *Store) ByID(id string) (models.Resource, bool) {
	cat, err := s.Get()
	if err != nil {
		return models.Resource{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return models.Resource{}, false
	}
	return cat.Rows[i], true
}

// Path returns the table path this store reads.
func (s *Store) Path() string {
	return s.path
}

// Provinces returns the distinct provinces of the loaded rows, excluding
// blanks and scope sentinels.
func (s *Store) Provinces(isGlobal func(province string) bool) []string {
	return Provinces(s.Rows(), isGlobal)
}

// LoadedAt reports when the table was read, or the zero time after a
// failed load.
func (s *Store) LoadedAt() time.Time {
	cat, err := s.Get()
	if err != nil {
		return time.Time{}
	}
	return cat.LoadedAt
}
