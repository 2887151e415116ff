package resolver

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/craftshop/backend/internal/domain/bom"
	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/shared"
)

// Queries shorter than this return an empty result without touching the
// catalogs at all.
const minQueryLength = 2

// defaultPerCatalogLimit caps how many matches each catalog contributes to
// one search unless overridden via WithSearchLimit
const defaultPerCatalogLimit = 10

// Decoder decodes a captured image or frame into a scan result. It runs in
// its own execution context and must honor ctx cancellation so an operator
// can abort a capture at any time.
type Decoder interface {
	Decode(ctx context.Context, image []byte) (*ScanResult, error)
}

// SearchCache caches ranked candidate lists per normalized query. A miss is
// reported via ok=false; cache failures are swallowed by implementations
// since the catalogs remain the source of truth.
type SearchCache interface {
	Get(ctx context.Context, query string) ([]Candidate, bool)
	Set(ctx context.Context, query string, candidates []Candidate)
	Invalidate(ctx context.Context)
}

// Service resolves operator input — search text, a decoded scan, or manual
// entry — into an unambiguous component/product reference with a unit cost
type Service struct {
	productRepo   catalog.ProductRepository
	componentRepo catalog.ComponentRepository
	decoder       Decoder
	cache         SearchCache
	searchLimit   int

	seq    atomic.Uint64 // issued to each search as it starts
	latest atomic.Uint64 // highest seq that has finished
}

// ServiceOption is a functional option for Service configuration
type ServiceOption func(*Service)

// WithSearchLimit overrides how many matches each catalog contributes to one
// search. Non-positive values keep the default.
func WithSearchLimit(limit int) ServiceOption {
	return func(s *Service) {
		if limit > 0 {
			s.searchLimit = limit
		}
	}
}

// NewService creates a new resolver service. The cache may be nil.
func NewService(
	productRepo catalog.ProductRepository,
	componentRepo catalog.ComponentRepository,
	decoder Decoder,
	cache SearchCache,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		productRepo:   productRepo,
		componentRepo: componentRepo,
		decoder:       decoder,
		cache:         cache,
		searchLimit:   defaultPerCatalogLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search queries the union of the product and component catalogs and returns
// ranked candidates. Each search gets a monotonically increasing sequence
// number; a search that finishes after a newer one has already finished is
// flagged stale so a slow early response can never overwrite a newer one.
func (s *Service) Search(ctx context.Context, query string) (*SearchResult, error) {
	seq := s.seq.Add(1)

	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLength {
		return &SearchResult{Query: query, Seq: seq, Stale: s.finish(seq), Candidates: []Candidate{}}, nil
	}

	normalized := strings.ToLower(query)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, normalized); ok {
			return &SearchResult{Query: query, Seq: seq, Stale: s.finish(seq), Candidates: cached}, nil
		}
	}

	components, err := s.componentRepo.SearchByName(ctx, query, s.searchLimit)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.SearchByName(ctx, query, s.searchLimit)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(components)+len(products))
	for idx := range components {
		candidates = append(candidates, Candidate{
			ID:            components[idx].ID,
			SKU:           components[idx].SKU,
			Name:          components[idx].Name,
			ComponentType: string(bom.TargetTypeComponent),
			UnitCost:      components[idx].UnitCost,
		})
	}
	for idx := range products {
		candidates = append(candidates, Candidate{
			ID:            products[idx].ID,
			SKU:           products[idx].SKU,
			Name:          products[idx].Name,
			ComponentType: string(bom.TargetTypeProduct),
			UnitCost:      products[idx].UnitCost,
		})
	}
	rankCandidates(normalized, candidates)

	if s.cache != nil {
		s.cache.Set(ctx, normalized, candidates)
	}

	return &SearchResult{Query: query, Seq: seq, Stale: s.finish(seq), Candidates: candidates}, nil
}

// Scan decodes a captured image and resolves the result against the
// component catalog. A decoded SKU with a catalog match behaves like a search
// selection; anything else comes back as a structured needs-manual-entry
// result rather than an error, because an unreadable label is a normal
// outcome on the shop floor.
func (s *Service) Scan(ctx context.Context, image []byte) (*ScanResolution, error) {
	scan, err := s.decoder.Decode(ctx, image)
	if err != nil {
		return nil, err
	}
	return s.Resolve(ctx, *scan)
}

// Resolve matches an already-decoded scan against the component catalog
func (s *Service) Resolve(ctx context.Context, scan ScanResult) (*ScanResolution, error) {
	if scan.SKU == "" {
		return &ScanResolution{NeedsManualEntry: true, Scan: scan}, nil
	}

	component, err := s.componentRepo.FindBySKU(ctx, strings.ToUpper(scan.SKU))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &ScanResolution{NeedsManualEntry: true, Scan: scan}, nil
		}
		return nil, err
	}

	return &ScanResolution{
		Scan: scan,
		Matched: &Candidate{
			ID:            component.ID,
			SKU:           component.SKU,
			Name:          component.Name,
			ComponentType: string(bom.TargetTypeComponent),
			UnitCost:      component.UnitCost,
		},
	}, nil
}

// CreateManualEntry mints a manual component from operator input and returns
// the identity plus the audit notes to attach to the resulting BOM line.
// The original scanned or typed text survives in the notes even though the
// component itself is decoupled from any curated catalog entry.
func (s *Service) CreateManualEntry(ctx context.Context, req ManualEntryRequest) (*ManualEntryResponse, error) {
	component, err := catalog.NewManualComponent(req.Name, req.UnitCost)
	if err != nil {
		return nil, err
	}

	if err := s.componentRepo.Save(ctx, component); err != nil {
		return nil, err
	}

	notes := ""
	if req.OriginalText != "" {
		notes = "scanned: " + req.OriginalText
	}

	return &ManualEntryResponse{
		ComponentID:   component.ID,
		SKU:           component.SKU,
		Name:          component.Name,
		ComponentType: string(bom.TargetTypeComponent),
		UnitCost:      component.UnitCost,
		IsManual:      true,
		Notes:         notes,
	}, nil
}

// finish records a completed search and reports whether a newer search
// already finished
func (s *Service) finish(seq uint64) bool {
	for {
		latest := s.latest.Load()
		if seq <= latest {
			return true
		}
		if s.latest.CompareAndSwap(latest, seq) {
			return false
		}
	}
}

// rankCandidates orders matches best-first: exact SKU or name match, then
// prefix match, then substring, alphabetical within each band
func rankCandidates(normalizedQuery string, candidates []Candidate) {
	rank := func(c Candidate) int {
		sku := strings.ToLower(c.SKU)
		name := strings.ToLower(c.Name)
		switch {
		case sku == normalizedQuery || name == normalizedQuery:
			return 0
		case strings.HasPrefix(sku, normalizedQuery) || strings.HasPrefix(name, normalizedQuery):
			return 1
		default:
			return 2
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := rank(candidates[i]), rank(candidates[j])
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(candidates[i].Name) < strings.ToLower(candidates[j].Name)
	})
}
