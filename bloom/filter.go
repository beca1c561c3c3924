// Package bloom provides keyword deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for keyword deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected keywords
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a keyword to the filter.
func (f *Filter) Add(keyword string) {
	f.f.AddString(keyword)
}

// Test returns true if the keyword might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(keyword string) bool {
	return f.f.TestString(keyword)
}

// EstimatedCount returns the approximate number of keywords in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
