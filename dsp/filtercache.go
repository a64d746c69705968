package dsp

import lru "github.com/hashicorp/golang-lru/v2"

// filterKey identifies a designed FIR filter by its generating parameters,
// so re-tuning to a previously used (order, cutoff, sampleRate) triple
// doesn't redesign the same coefficients.
type filterKey struct {
	order      int
	cutoff     float64
	sampleRate float64
}

// FilterCache memoizes DesignLowpassFIR results. The reference decoder
// designs its filters once at startup and never re-tunes, so it has no
// analogous cache; this supports the Go receiver's runtime retuning path.
type FilterCache struct {
	cache *lru.Cache[filterKey, []float32]
}

// NewFilterCache builds a cache holding up to size designed filters.
func NewFilterCache(size int) *FilterCache {
	c, _ := lru.New[filterKey, []float32](size)
	return &FilterCache{cache: c}
}

// DesignLowpassFIR returns a cached filter for the given parameters,
// designing and storing one if absent.
func (f *FilterCache) DesignLowpassFIR(order int, cutoff, sampleRate float64) []float32 {
	key := filterKey{order, cutoff, sampleRate}
	if v, ok := f.cache.Get(key); ok {
		return v
	}
	v := DesignLowpassFIR(order, cutoff, sampleRate)
	f.cache.Add(key, v)
	return v
}
