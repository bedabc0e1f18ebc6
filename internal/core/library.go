package core

import "github.com/spotatui/spotatui/internal/nav"

// LibraryPages is an append-only list of fetched pages of T (saved
// tracks, saved albums, saved shows, playlist items, search results of
// one kind, ...), plus a selection cursor into the currently displayed
// page. Pages are immutable once appended, which is what makes
// background prefetch trivially concurrency-safe under the state lock:
// a prefetch goroutine only ever appends.
type LibraryPages[T any] struct {
	// Index selects which page of Pages is currently displayed.
	Index int
	Pages [][]T

	Selection nav.Selection

	// Offset is the API pagination offset of the next page to fetch.
	Offset int
	// Total is the server-reported total item count, once known.
	Total int
}

// NewLibraryPages returns an empty LibraryPages.
func NewLibraryPages[T any]() LibraryPages[T] {
	return LibraryPages[T]{}
}

// CurrentPage returns the page at Index, or nil if none has loaded yet.
func (l *LibraryPages[T]) CurrentPage() []T {
	if l == nil || l.Index < 0 || l.Index >= len(l.Pages) {
		return nil
	}
	return l.Pages[l.Index]
}

// AppendPage appends a newly fetched page. Because pages are
// append-only, the offset of any already-appended page never decreases
// as later pages are appended (invariant 6).
func (l *LibraryPages[T]) AppendPage(page []T, nextOffset, total int) {
	l.Pages = append(l.Pages, page)
	l.Offset = nextOffset
	l.Total = total
	l.Index = len(l.Pages) - 1
	l.Selection.ApplyPending(len(page))
}

// PageCount returns how many pages have been fetched so far.
func (l *LibraryPages[T]) PageCount() int {
	if l == nil {
		return 0
	}
	return len(l.Pages)
}
