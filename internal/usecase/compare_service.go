package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Acceptance threshold and hardening defaults.
const (
	defaultMinConfidence  = 0.6
	defaultAdapterTimeout = 10 * time.Second
	defaultCacheTTL       = 5 * time.Minute
)

// productLocatorMarkers identify references that are likely product detail
// pages worth fetching for enrichment.
var productLocatorMarkers = []string{
	"/dp/", "/product/", "/p/", "/item/", "/buy/",
	"product-", "item-", "/gp/product/", "/d/",
	"pid=", "productid=", "itemid=",
}

// CompareConfig holds configuration for the comparison service.
type CompareConfig struct {
	MinConfidence  float64
	AdapterTimeout time.Duration
	CacheTTL       time.Duration
}

// CompareService is the aggregation engine: it turns one product reference
// into a cross-source price comparison.
type CompareService struct {
	registry   domain.AdapterRegistry
	normalizer *Normalizer
	fetcher    domain.ContentFetcher
	extractors []domain.ProductExtractor
	audit      domain.AuditRepository
	cache      domain.ResultCache
	logger     *zap.Logger

	minConfidence  float64
	adapterTimeout time.Duration
	cacheTTL       time.Duration
}

// NewCompareService creates the engine. Fetcher, extractors, audit and cache
// are optional collaborators; a nil value disables that path. Extractors are
// tried in order and merged backfill-only.
func NewCompareService(
	registry domain.AdapterRegistry,
	normalizer *Normalizer,
	fetcher domain.ContentFetcher,
	extractors []domain.ProductExtractor,
	audit domain.AuditRepository,
	cache domain.ResultCache,
	logger *zap.Logger,
	config CompareConfig,
) *CompareService {
	minConfidence := config.MinConfidence
	if minConfidence <= 0 {
		minConfidence = defaultMinConfidence
	}
	adapterTimeout := config.AdapterTimeout
	if adapterTimeout <= 0 {
		adapterTimeout = defaultAdapterTimeout
	}
	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CompareService{
		registry:       registry,
		normalizer:     normalizer,
		fetcher:        fetcher,
		extractors:     extractors,
		audit:          audit,
		cache:          cache,
		logger:         logger,
		minConfidence:  minConfidence,
		adapterTimeout: adapterTimeout,
		cacheTTL:       cacheTTL,
	}
}

// Compare is the system's single entry point.
// Flow: validate -> signature -> enrich -> backfill -> fan out -> score ->
// filter -> rank -> assemble -> record.
func (s *CompareService) Compare(ctx context.Context, reference string) (*domain.ComparisonResult, error) {
	if err := validateReference(reference); err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey(reference)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
			s.logger.Debug("comparison served from cache", zap.String("reference", reference))
			return cached, nil
		}
	}

	start := time.Now()

	sig := s.buildSignature(ctx, reference)
	s.backfill(&sig, reference)

	offers := s.fanOut(ctx, sig.Clone())

	result := AssembleResult(sig, offers, len(s.registry.All()), time.Since(start))
	s.record(ctx, result)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache comparison", zap.Error(err))
		}
	}

	s.logger.Info("comparison complete",
		zap.String("reference", reference),
		zap.String("product", sig.CanonicalName),
		zap.Int("offers", len(result.Offers)),
		zap.Int64("duration_ms", result.DurationMs),
	)
	return result, nil
}

// buildSignature resolves the reference to a source and uses its native
// extraction when available; otherwise the generic normalizer path applies.
func (s *CompareService) buildSignature(ctx context.Context, reference string) domain.ProductSignature {
	var sig *domain.ProductSignature

	adapter, resolved := s.registry.Resolve(reference)
	if resolved {
		if extractor, ok := adapter.(domain.SignatureExtractor); ok {
			native, err := extractor.ExtractSignature(reference)
			if err != nil {
				s.logger.Debug("native extraction failed",
					zap.String("source", adapter.Key()), zap.Error(err))
			} else {
				sig = native
			}
		}
	}

	if sig == nil {
		generic := s.normalizer.BuildSignature(reference)
		if resolved {
			generic.SourceKey = adapter.Key()
		}
		sig = &generic
	}

	s.enrich(ctx, sig, reference)
	return *sig
}

// enrich fetches page content and runs the extractor chain. Every extracted
// field is merged backfill-only; a failure at any step simply skips the rest.
func (s *CompareService) enrich(ctx context.Context, sig *domain.ProductSignature, reference string) {
	if s.fetcher == nil || len(s.extractors) == 0 || !isProductLocator(reference) {
		return
	}

	content, err := s.fetcher.Fetch(ctx, reference)
	if err != nil {
		s.logger.Debug("content fetch failed", zap.String("reference", reference), zap.Error(err))
		return
	}

	for _, extractor := range s.extractors {
		info, err := extractor.Extract(ctx, content, reference)
		if err != nil || info == nil {
			continue
		}
		mergeExtracted(sig, info)
	}
}

// backfill completes any still-weak signature fields.
func (s *CompareService) backfill(sig *domain.ProductSignature, reference string) {
	s.normalizer.Backfill(sig, reference)
}

// fanOut dispatches one goroutine per adapter and, within an adapter, one
// per discovered location. It joins on all of them: a slow source delays the
// response rather than being dropped, bounded by the per-adapter timeout.
// Offers at the same effective price keep their (nondeterministic) encounter
// order, which the stable sort preserves.
func (s *CompareService) fanOut(ctx context.Context, sig domain.ProductSignature) []domain.Offer {
	adapters := s.registry.All()

	var mu sync.Mutex
	var offers []domain.Offer

	var wg sync.WaitGroup
	for _, adapter := range adapters {
		wg.Add(1)
		go func(adapter domain.SourceAdapter) {
			defer wg.Done()
			defer s.recoverAdapter(adapter)

			adapterCtx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
			defer cancel()

			locations := adapter.DiscoverLocations(sig)

			var lwg sync.WaitGroup
			for _, location := range locations {
				lwg.Add(1)
				go func(location string) {
					defer lwg.Done()
					defer s.recoverAdapter(adapter)

					offer := s.fetchAndScore(adapterCtx, adapter, location, sig)
					if offer == nil {
						return
					}
					mu.Lock()
					offers = append(offers, *offer)
					mu.Unlock()
				}(location)
			}
			lwg.Wait()
		}(adapter)
	}
	wg.Wait()

	sortOffers(offers)
	return offers
}

// fetchAndScore produces the final immutable offer for one location: the
// provisional offer's confidence is overwritten with the owning adapter's
// recomputed score, and sub-threshold offers are dropped silently.
func (s *CompareService) fetchAndScore(ctx context.Context, adapter domain.SourceAdapter, location string, sig domain.ProductSignature) *domain.Offer {
	provisional, err := adapter.FetchOffer(ctx, location, sig)
	if err != nil {
		s.logger.Warn("source unavailable",
			zap.String("source", adapter.Key()),
			zap.String("location", location),
			zap.Error(err),
		)
		return nil
	}
	if provisional == nil {
		return nil
	}

	offer := *provisional
	offer.MatchConfidence = adapter.ScoreMatchConfidence(offer, sig)
	if offer.MatchConfidence < s.minConfidence {
		return nil
	}
	return &offer
}

// record persists the outcome best-effort: failure only clears the
// Persisted flag, it never fails the comparison.
func (s *CompareService) record(ctx context.Context, result *domain.ComparisonResult) {
	if s.audit == nil {
		return
	}
	id, err := s.audit.Record(ctx, result)
	if err != nil {
		s.logger.Warn("audit record failed", zap.Error(err))
		return
	}
	result.Persisted = true
	result.AuditID = id
}

func (s *CompareService) recoverAdapter(adapter domain.SourceAdapter) {
	if r := recover(); r != nil {
		s.logger.Error("adapter panic recovered",
			zap.String("source", adapter.Key()),
			zap.Any("panic", r),
		)
	}
}

// cacheKey normalizes a reference into a stable cache key.
func (s *CompareService) cacheKey(reference string) string {
	key := strings.ToLower(strings.TrimSpace(reference))
	key = nonAlphanumPattern.ReplaceAllString(key, " ")
	key = multiSpacePattern.ReplaceAllString(key, " ")
	return "compare:" + strings.TrimSpace(key)
}

// validateReference rejects references that fail basic locator syntax before
// any adapter is invoked.
func validateReference(reference string) error {
	if strings.TrimSpace(reference) == "" {
		return fmt.Errorf("%w: empty reference", domain.ErrInvalidReference)
	}
	u, err := url.ParseRequestURI(reference)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidReference, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", domain.ErrInvalidReference, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", domain.ErrInvalidReference)
	}
	return nil
}

// isProductLocator reports whether the reference looks like a product detail
// page rather than a listing or home page.
func isProductLocator(reference string) bool {
	lower := strings.ToLower(reference)
	for _, marker := range productLocatorMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// mergeExtracted applies an extracted description to the signature,
// backfill-only: populated signature fields always win.
func mergeExtracted(sig *domain.ProductSignature, info *domain.ExtractedProduct) {
	if info.Name != "" && (sig.CanonicalName == "" || sig.CanonicalName == domain.PlaceholderName) {
		sig.CanonicalName = info.Name
	}
	if sig.Brand == "" {
		sig.Brand = info.Brand
	}
	if sig.Model == "" {
		sig.Model = info.Model
	}
	if sig.Category == "" {
		sig.Category = info.Category
	}
	if sig.PrimaryID == "" {
		if info.PrimaryID != "" {
			sig.PrimaryID = info.PrimaryID
		} else if info.SKU != "" {
			sig.PrimaryID = info.SKU
		}
	}
	if !sig.HasAnchorPrice() && info.Price > 0 {
		sig.OriginalPrice = decimal.NewFromFloat(info.Price)
		if sig.Currency == "" {
			sig.Currency = info.Currency
		}
	}
	if sig.Variant == nil {
		sig.Variant = map[string]string{}
	}
	setVariantIfAbsent(sig.Variant, "color", info.Color)
	setVariantIfAbsent(sig.Variant, "size", info.Size)
	setVariantIfAbsent(sig.Variant, "capacity", info.Capacity)
	setVariantIfAbsent(sig.Variant, "ram", info.RAM)
}

func setVariantIfAbsent(variant map[string]string, key, value string) {
	if value == "" {
		return
	}
	if _, ok := variant[key]; !ok {
		variant[key] = value
	}
}
