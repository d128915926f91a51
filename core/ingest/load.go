package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL is how long a cached dataset stays valid.
const cacheTTL = 7 * 24 * time.Hour

// Load fetches, decodes and normalizes the dataset behind src exactly once.
// Any failure is reported as a DataLoadError and no partial dataset escapes.
// A nil manager or store skips the cache.
func Load(ctx context.Context, src contract.DataSource, opts NormalizeOptions, mgr contract.CacheManager) (schema.Dataset, error) {
	raw, err := readAll(ctx, src)
	if err != nil {
		return nil, &schema.DataLoadError{Source: src.Name(), Err: err}
	}

	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetDatasetStore()
	}
	if store == nil {
		// Fallback to direct computation
		return decode(src, raw, opts)
	}

	key := generateCacheKey(raw, opts)

	// Check for cache hit
	if data := checkCacheHit(store, key); data != nil {
		return data, nil
	}

	// Cache miss: compute and store
	data, err := decode(src, raw, opts)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(data); err == nil {
		if err := store.Set(key, payload, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to cache dataset", err)
		}
	}
	return data, nil
}

// readAll drains the source, honoring cancellation before and after the read.
func readAll(ctx context.Context, src contract.DataSource) ([]byte, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return raw, nil
}

// decode turns raw CSV bytes into a dataset.
func decode(src contract.DataSource, raw []byte, opts NormalizeOptions) (schema.Dataset, error) {
	rows, err := DecodeCSV(bytes.NewReader(raw))
	if err != nil {
		return nil, &schema.DataLoadError{Source: src.Name(), Err: err}
	}
	data, err := Normalize(rows, opts)
	if err != nil {
		return nil, &schema.DataLoadError{Source: src.Name(), Err: err}
	}
	return data, nil
}

// checkCacheHit attempts to retrieve and validate a cached dataset
func checkCacheHit(store contract.CacheStore, key string) schema.Dataset {
	payload, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil
	}
	var data schema.Dataset
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil
	}
	return data
}

// generateCacheKey hashes the raw bytes together with every option that
// changes the normalized output.
func generateCacheKey(raw []byte, opts NormalizeOptions) string {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	policy := opts.Policy
	if policy == "" {
		policy = schema.RejectNegative
	}
	h := sha256.New()
	_, _ = h.Write(raw)
	_, _ = fmt.Fprintf(h, ":%s:%s:%d", zoneFingerprint(loc), policy, NormalizerVersion)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// zoneFingerprint identifies loc by its name plus the abbreviation and UTC
// offset it reports in January and July of several years. Two zones that
// share a name such as "Local" but apply different rules hash apart.
func zoneFingerprint(loc *time.Location) string {
	var b bytes.Buffer
	b.WriteString(loc.String())
	for _, year := range []int{2000, 2010, 2020, 2030} {
		for _, month := range []time.Month{time.January, time.July} {
			name, offset := time.Date(year, month, 1, 12, 0, 0, 0, time.UTC).In(loc).Zone()
			_, _ = fmt.Fprintf(&b, "|%s%+d", name, offset)
		}
	}
	return b.String()
}
