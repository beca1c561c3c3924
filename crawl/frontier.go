package crawl

import (
	"strings"
	"sync"

	"github.com/msaveliev/ozonkw/bloom"
)

// Frontier is an in-memory keyword frontier with FIFO ordering and Bloom
// filter deduplication. It is safe for concurrent use, though the engine
// drains it from a single sequential loop.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []string
}

// NewFrontier creates a new Frontier sized for n expected keywords
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewFilter(n, fpRate),
	}
}

// Push adds a keyword to the frontier. The keyword is trimmed before
// deduplication. Returns false if it is empty or has already been seen.
func (f *Frontier) Push(keyword string) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.Test(keyword) {
		return false
	}
	f.seen.Add(keyword)
	f.queue = append(f.queue, keyword)
	return true
}

// MarkSeen records a keyword as already expanded without queueing it.
// Used to pre-place the seed keyword in the visited set the moment its
// expansion begins, so it is never re-queued as its own candidate.
func (f *Frontier) MarkSeen(keyword string) {
	keyword = strings.TrimSpace(keyword)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen.Add(keyword)
}

// Pop returns the next keyword in arrival order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	kw := f.queue[0]
	f.queue = f.queue[1:]
	return kw, true
}

// Len returns the number of keywords awaiting expansion.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the keyword has been expanded or queued.
func (f *Frontier) Seen(keyword string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(strings.TrimSpace(keyword))
}
