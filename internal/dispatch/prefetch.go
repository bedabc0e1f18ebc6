package dispatch

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxPrefetchPages bounds how many pages a single Prefetcher will fetch
// ahead of the user's current scroll position; past this, background
// fetching stops and the next page is fetched on demand instead.
const MaxPrefetchPages = 10

// PageFetcher fetches one more page of some paginated resource, given
// the offset to fetch from. It returns the number of items fetched (0
// means exhausted) or an error.
type PageFetcher func(ctx context.Context, offset int) (fetched int, nextOffset int, err error)

// Prefetcher runs background page fetches for library/search results so
// scrolling near the end of a loaded page doesn't stall on a synchronous
// fetch. One Prefetcher instance is scoped to a single paginated list.
type Prefetcher struct {
	fetch PageFetcher
	log   *logrus.Entry

	mu      sync.Mutex
	running bool
}

// NewPrefetcher builds a Prefetcher around fetch, tagging its log entries
// with a stable task id for correlation across the pages it fetches.
func NewPrefetcher(fetch PageFetcher, log *logrus.Entry) *Prefetcher {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Prefetcher{fetch: fetch, log: log.WithField("task_id", uuid.NewString())}
}

// Start begins prefetching from offset in the background, stopping at
// MaxPrefetchPages pages, exhaustion, or the first fetch error. A
// Prefetcher that is already running ignores a second Start call — only
// one prefetch run per list at a time.
func (p *Prefetcher) Start(ctx context.Context, offset int) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			p.running = false
			p.mu.Unlock()
		}()

		next := offset
		for page := 0; page < MaxPrefetchPages; page++ {
			select {
			case <-ctx.Done():
				return
			default:
			}

			fetched, nextOffset, err := p.fetch(ctx, next)
			if err != nil {
				p.log.WithError(err).WithField("page", page).Warn("prefetch page failed")
				return
			}
			if fetched == 0 {
				return
			}
			next = nextOffset
		}
		p.log.WithField("pages", MaxPrefetchPages).Debug("prefetch hit page ceiling")
	}()
}
