// Package fuzzy - нечёткий поиск по уже загруженному набору элементов.
//
// Ищет только среди переданных элементов (текущей страницы листинга) и не заменяет
// серверный фильтр: пустой результат значит "на этой странице совпадений нет",
// а не "совпадений нет во всей базе".
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold - порог по умолчанию; чем выше порог, тем строже поиск
const DefaultThreshold = 0.6

// Field - поле элемента с весом в итоговой оценке
type Field[T any] struct {
	Name   string
	Weight float64
	Value  func(T) string
}

// Options - настройки поиска; Threshold в диапазоне (0, 1], 0 - значение по умолчанию
type Options struct {
	Threshold float64
}

// Result - найденный элемент с оценкой и позицией в исходном наборе
type Result[T any] struct {
	Item  T
	Score float64
	Index int
}

// Searcher - индекс токенов по набору элементов
type Searcher[T any] struct {
	items       []T
	fields      []Field[T]
	threshold   float64
	totalWeight float64
	tokens      [][][]string // [элемент][поле] -> токены
}

// конструктор; токены всех полей считаются один раз
func New[T any](items []T, fields []Field[T], opts Options) *Searcher[T] {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if threshold > 1 {
		threshold = 1
	}

	s := &Searcher[T]{
		items:     items,
		fields:    fields,
		threshold: threshold,
		tokens:    make([][][]string, len(items)),
	}
	for _, f := range fields {
		s.totalWeight += f.Weight
	}
	for i, item := range items {
		s.tokens[i] = make([][]string, len(fields))
		for j, f := range fields {
			s.tokens[i][j] = Tokenize(f.Value(item))
		}
	}
	return s
}

// Search возвращает элементы по убыванию релевантности.
// Пустой запрос возвращает исходный набор в исходном порядке
func (s *Searcher[T]) Search(query string) []T {
	if len(Tokenize(query)) == 0 {
		return s.items
	}

	results := s.SearchScored(query)
	out := make([]T, len(results))
	for i, r := range results {
		out[i] = r.Item
	}
	return out
}

// SearchScored - то же, что Search, но с оценками; при равной оценке сохраняется исходный порядок
func (s *Searcher[T]) SearchScored(query string) []Result[T] {
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		out := make([]Result[T], len(s.items))
		for i, item := range s.items {
			out[i] = Result[T]{Item: item, Index: i}
		}
		return out
	}

	results := make([]Result[T], 0)
	for i, item := range s.items {
		score, accepted := s.score(i, queryTokens)
		if !accepted {
			continue
		}
		results = append(results, Result[T]{Item: item, Score: score, Index: i})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results
}

// score: поле принимается, если его сходство не ниже порога;
// элемент без принятых полей отбрасывается
func (s *Searcher[T]) score(item int, queryTokens []string) (float64, bool) {
	var (
		sum      float64
		accepted bool
	)
	for j, f := range s.fields {
		sim := FieldSimilarity(queryTokens, s.tokens[item][j])
		if sim < s.threshold {
			continue
		}
		accepted = true
		sum += f.Weight * sim
	}
	if s.totalWeight > 0 {
		sum /= s.totalWeight
	}
	return sum, accepted
}

// FieldSimilarity - среднее по токенам запроса лучшего сходства с токенами поля
func FieldSimilarity(queryTokens, fieldTokens []string) float64 {
	if len(queryTokens) == 0 || len(fieldTokens) == 0 {
		return 0
	}

	var total float64
	for _, q := range queryTokens {
		best := 0.0
		for _, f := range fieldTokens {
			if sim := TokenSimilarity(q, f); sim > best {
				best = sim
				if best == 1 {
					break
				}
			}
		}
		total += best
	}
	return total / float64(len(queryTokens))
}

// TokenSimilarity: вхождение токена запроса в токен поля даёт 1,
// иначе 1 - расстояние Левенштейна / длина большего токена
func TokenSimilarity(query, field string) float64 {
	if query == "" || field == "" {
		return 0
	}
	if strings.Contains(field, query) {
		return 1
	}

	maxLen := max(utf8.RuneCountInString(query), utf8.RuneCountInString(field))
	dist := levenshtein.ComputeDistance(query, field)
	return 1 - float64(dist)/float64(maxLen)
}

// Tokenize режет строку на слова в нижнем регистре
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
