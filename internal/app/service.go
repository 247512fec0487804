// Package service owns the wine collection and implements the
// dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/winedex/internal/adapters/repository"
	"github.com/okian/winedex/internal/domain/classify"
	"github.com/okian/winedex/internal/domain/model"
	"github.com/okian/winedex/internal/domain/query"
	"github.com/okian/winedex/internal/domain/types"
	"github.com/okian/winedex/internal/validation"
	"github.com/okian/winedex/pkg/logger"
	"github.com/okian/winedex/pkg/metrics"
)

// ListQuery is the search, filter and sort pipeline applied by List.
type ListQuery struct {
	Search    string
	Category  string
	Value     string
	SortField string
	Order     string
}

// Card is a wine together with its computed classification.
type Card struct {
	Wine  types.Wine         `json:"wine"`
	Stats classify.WineStats `json:"stats"`
}

// ImportResult reports what an import changed.
type ImportResult struct {
	Added    int  `json:"added"`
	Total    int  `json:"total"`
	Replaced bool `json:"replaced"`
}

// Service owns the collection. Writers are serialised and always replace
// the whole list: load, compute the new list, replace.
type Service struct {
	mu sync.RWMutex

	store      repository.Store
	classifier *classify.Classifier
	validator  *validation.Validator
	logger     logger.Logger
	now        func() time.Time

	seed          bool
	systemMetrics bool

	// State
	started   bool
	startedAt time.Time
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	writes  atomic.Int64
	queries atomic.Int64
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		classifier:    classify.New(),
		validator:     validation.New(),
		now:           time.Now,
		systemMetrics: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start opens the store if needed, seeds sample data when configured and
// starts the runtime metrics collector.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithLogger(s.logger))
	}

	s.logger.Info(ctx, "starting wine journal service...", logger.String("store", s.store.Backend()))

	wines, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}
	if s.seed && len(wines) == 0 {
		wines = s.prepareImport(nil, repository.SampleWines())
		if err := s.store.Replace(ctx, wines); err != nil {
			return fmt.Errorf("seed collection: %w", err)
		}
		s.logger.Info(ctx, "seeded sample collection", logger.Int("wines", len(wines)))
	}
	s.publish(wines)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	if s.systemMetrics {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			metrics.RunSystemCollector(runCtx)
		}()
	}

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "wine journal service started", logger.Int("wines", len(wines)))
	return nil
}

// Stop gracefully shuts down the service and closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping wine journal service...")

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	if err := s.store.Close(); err != nil {
		s.logger.Error(ctx, "failed to close store", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "wine journal service stopped")
}

// load returns the current snapshot.
func (s *Service) load(ctx context.Context) ([]types.Wine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store.Load(ctx)
}

// mutate applies fn to the current snapshot under the writer lock and
// stores the result.
func (s *Service) mutate(ctx context.Context, op string, fn func([]types.Wine) ([]types.Wine, error)) ([]types.Wine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	current, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := s.store.Replace(ctx, next); err != nil {
		return nil, fmt.Errorf("replace collection: %w", err)
	}

	s.writes.Add(1)
	metrics.RecordCollectionWrite(op)
	s.publish(next)
	return next, nil
}

// publish refreshes the collection gauges.
func (s *Service) publish(wines []types.Wine) {
	captured, xp := 0, 0
	for _, w := range wines {
		if w.Captured {
			captured++
		}
		xp += w.ExperiencePoints
	}
	metrics.UpdateCollection(len(wines), captured, xp, model.Level(xp))
}

// List runs search, then category filter, then sort over the collection.
func (s *Service) List(ctx context.Context, q ListQuery) ([]types.Wine, error) {
	wines, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	wines = query.Search(wines, q.Search)
	if q.Category != "" {
		if wines, err = query.FilterByCategory(wines, q.Category, q.Value); err != nil {
			return nil, err
		}
	}
	if q.SortField != "" {
		order, err := query.ParseOrder(q.Order)
		if err != nil {
			return nil, err
		}
		if wines, err = query.Sort(wines, q.SortField, order); err != nil {
			return nil, err
		}
	}

	s.queries.Add(1)
	metrics.RecordQuery("list", len(wines))
	return wines, nil
}

// Get returns one wine by id.
func (s *Service) Get(ctx context.Context, id int) (types.Wine, error) {
	wines, err := s.load(ctx)
	if err != nil {
		return types.Wine{}, err
	}
	return repository.Find(wines, id)
}

// Add validates w, assigns the next id and stores it. An empty rarity is
// filled from the classifier; a supplied one is kept as an override.
func (s *Service) Add(ctx context.Context, w types.Wine) (types.Wine, error) {
	if err := s.validator.Validate(w); err != nil {
		return types.Wine{}, err
	}

	var added types.Wine
	_, err := s.mutate(ctx, "add", func(current []types.Wine) ([]types.Wine, error) {
		added = s.prepare(w, nextID(current))
		return append(current, added), nil
	})
	if err != nil {
		return types.Wine{}, err
	}

	s.logger.Info(ctx, "wine added",
		logger.Int("id", added.ID),
		logger.String("name", added.Name),
		logger.String("rarity", string(added.Rarity)),
	)
	return added, nil
}

// Update replaces the wine with id by w, keeping id and dateAdded.
func (s *Service) Update(ctx context.Context, id int, w types.Wine) (types.Wine, error) {
	if err := s.validator.Validate(w); err != nil {
		return types.Wine{}, err
	}

	var updated types.Wine
	_, err := s.mutate(ctx, "update", func(current []types.Wine) ([]types.Wine, error) {
		for i := range current {
			if current[i].ID != id {
				continue
			}
			updated = w.Clone()
			updated.ID = id
			if updated.DateAdded.IsZero() {
				updated.DateAdded = current[i].DateAdded
			}
			current[i] = updated
			return current, nil
		}
		return nil, fmt.Errorf("%w: %d", repository.ErrNotFound, id)
	})
	if err != nil {
		return types.Wine{}, err
	}

	s.logger.Info(ctx, "wine updated", logger.Int("id", id))
	return updated, nil
}

// Delete removes the wine with id.
func (s *Service) Delete(ctx context.Context, id int) error {
	_, err := s.mutate(ctx, "delete", func(current []types.Wine) ([]types.Wine, error) {
		for i := range current {
			if current[i].ID == id {
				return append(current[:i], current[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: %d", repository.ErrNotFound, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "wine deleted", logger.Int("id", id))
	return nil
}

// Card classifies one wine for display. Cards always show the computed
// rarity, not the stored one.
func (s *Service) Card(ctx context.Context, id int) (Card, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return Card{}, err
	}
	return Card{Wine: w, Stats: s.Classify(w)}, nil
}

// Classify computes the card stats for a wine without storing it.
func (s *Service) Classify(w types.Wine) classify.WineStats {
	start := time.Now()
	stats := s.classifier.Stats(w)
	metrics.RecordClassificationLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordWineClassified(string(stats.Classification.TypeKey), string(stats.Classification.RarityKey))
	return stats
}

// CollectionStats aggregates the whole collection.
func (s *Service) CollectionStats(ctx context.Context) (model.CollectionStats, error) {
	wines, err := s.load(ctx)
	if err != nil {
		return model.CollectionStats{}, err
	}
	return query.Summarize(wines, s.classifier), nil
}

// Groups splits the collection for the card grid.
func (s *Service) Groups(ctx context.Context, by, sortMode string) ([]query.Group, error) {
	groupBy, err := query.ParseGroupBy(by)
	if err != nil {
		return nil, err
	}
	mode, err := query.ParseGridSort(sortMode)
	if err != nil {
		return nil, err
	}
	wines, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := query.Groups(wines, groupBy, mode, s.classifier)
	if err != nil {
		return nil, err
	}
	metrics.RecordQuery("groups", len(groups))
	return groups, nil
}

// UniqueValues lists the distinct values of field across the collection.
func (s *Service) UniqueValues(ctx context.Context, field string) ([]string, error) {
	wines, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	values, err := query.UniqueValues(wines, field)
	if err != nil {
		return nil, err
	}
	metrics.RecordQuery("unique_values", len(values))
	return values, nil
}

// Import adds wines to the collection, or replaces it when replace is set.
// Incoming ids are discarded and reassigned.
func (s *Service) Import(ctx context.Context, wines []types.Wine, replace bool) (ImportResult, error) {
	if len(wines) == 0 && !replace {
		return ImportResult{}, ErrEmptyFile
	}
	for i, w := range wines {
		if err := s.validator.Validate(w); err != nil {
			return ImportResult{}, fmt.Errorf("wine %d (%q): %w", i+1, w.Name, err)
		}
	}

	op := "import"
	if replace {
		op = "import_replace"
	}
	next, err := s.mutate(ctx, op, func(current []types.Wine) ([]types.Wine, error) {
		if replace {
			current = nil
		}
		return s.prepareImport(current, wines), nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{Added: len(wines), Total: len(next), Replaced: replace}
	s.logger.Info(ctx, "wines imported",
		logger.Int("added", res.Added),
		logger.Int("total", res.Total),
		logger.Bool("replaced", replace),
	)
	return res, nil
}

// Seed imports the sample collection.
func (s *Service) Seed(ctx context.Context) (ImportResult, error) {
	return s.Import(ctx, repository.SampleWines(), false)
}

// Export returns the whole collection.
func (s *Service) Export(ctx context.Context) ([]types.Wine, error) {
	return s.load(ctx)
}

// Clear empties the collection.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}
	s.writes.Add(1)
	metrics.RecordCollectionWrite("clear")
	s.publish(nil)
	s.logger.Warn(ctx, "collection cleared")
	return nil
}

// Reclassify overwrites every stored rarity with the computed one and
// returns how many changed.
func (s *Service) Reclassify(ctx context.Context) (int, error) {
	changed := 0
	_, err := s.mutate(ctx, "reclassify", func(current []types.Wine) ([]types.Wine, error) {
		for i := range current {
			r := classify.StoredRarity(s.classifier.DetermineRarity(current[i]))
			if current[i].Rarity != r {
				current[i].Rarity = r
				changed++
			}
		}
		return current, nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info(ctx, "collection reclassified", logger.Int("changed", changed))
	return changed, nil
}

// Reference returns every classification table.
func (s *Service) Reference() classify.Reference {
	return classify.Tables()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"writes":      s.writes.Load(),
		"queries":     s.queries.Load(),
		"currentYear": s.classifier.CurrentYear(),
	}

	if s.started {
		stats["store"] = s.store.Backend()
		stats["uptimeSeconds"] = int64(s.now().Sub(s.startedAt).Seconds())
		if wines, err := s.store.Load(context.Background()); err == nil {
			stats["wines"] = len(wines)
		}
	}

	return stats
}

// prepare stamps id, dateAdded and a missing rarity onto a copy of w.
func (s *Service) prepare(w types.Wine, id int) types.Wine {
	out := w.Clone()
	out.ID = id
	if out.DateAdded.IsZero() {
		out.DateAdded = s.now().UTC()
	}
	if out.Rarity == "" {
		out.Rarity = classify.StoredRarity(s.classifier.DetermineRarity(out))
	}
	return out
}

// prepareImport appends incoming to current with fresh ids.
func (s *Service) prepareImport(current, incoming []types.Wine) []types.Wine {
	id := nextID(current)
	out := make([]types.Wine, 0, len(current)+len(incoming))
	out = append(out, current...)
	for _, w := range incoming {
		out = append(out, s.prepare(w, id))
		id++
	}
	return out
}

// nextID is one above the highest id in use, starting at 1.
func nextID(wines []types.Wine) int {
	highest := 0
	for _, w := range wines {
		highest = max(highest, w.ID)
	}
	return highest + 1
}
