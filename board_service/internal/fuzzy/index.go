package fuzzy

import "sync"

// Index хранит один Searcher и перестраивает его, когда меняется набор элементов
// (другая длина или другой базовый массив); устаревший индекс не используется
type Index[T any] struct {
	mu       sync.Mutex
	fields   []Field[T]
	opts     Options
	items    []T
	searcher *Searcher[T]
	rebuilds int
}

func NewIndex[T any](fields []Field[T], opts Options) *Index[T] {
	return &Index[T]{fields: fields, opts: opts}
}

// Search ищет по items, при необходимости перестраивая индекс
func (x *Index[T]) Search(items []T, query string) []T {
	x.mu.Lock()
	if x.searcher == nil || !sameSlice(x.items, items) {
		x.items = items
		x.searcher = New(items, x.fields, x.opts)
		x.rebuilds++
	}
	s := x.searcher
	x.mu.Unlock()

	return s.Search(query)
}

func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
