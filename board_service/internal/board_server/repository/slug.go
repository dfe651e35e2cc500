package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"jobboard/board_service/internal/docstore"

	"github.com/gosimple/slug"
)

const (
	maxSlugLength   = 80
	slugCreateTries = 3
)

// MakeSlug - URL-безопасный slug из заголовка; fallback, если из текста ничего не осталось
func MakeSlug(text, fallback string) string {
	s := slug.Make(text)
	if len(s) > maxSlugLength {
		s = s[:maxSlugLength]
		if i := strings.LastIndex(s, "-"); i > 0 {
			s = s[:i]
		}
	}
	if s == "" {
		return fallback
	}
	return s
}

// freeSlug подбирает свободный slug: base, base-2, base-3, ...
func freeSlug(ctx context.Context, store docstore.Store, docType, base string) (string, error) {
	docs, err := store.Fetch(ctx, docstore.Query{
		Type:   docType,
		Filter: docstore.Match{Field: "slug", Param: "pattern"},
		Params: docstore.Params{"pattern": base + "*"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to look up slugs: %w", err)
	}

	taken := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		taken[d.String("slug")] = struct{}{}
	}

	candidate := base
	for i := 2; ; i++ {
		if _, ok := taken[candidate]; !ok {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}

// createWithSlug создаёт документ со свободным slug; при гонке за тот же slug пробует ещё раз
func createWithSlug(ctx context.Context, store docstore.Store, docType, text, fallback string, fields map[string]any) (docstore.Document, error) {
	base := MakeSlug(text, fallback)

	var lastErr error
	for try := 0; try < slugCreateTries; try++ {
		s, err := freeSlug(ctx, store, docType, base)
		if err != nil {
			return docstore.Document{}, err
		}
		fields["slug"] = s

		d, err := store.Create(ctx, docType, fields)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, docstore.ErrConflict) {
			return docstore.Document{}, err
		}
		lastErr = err
	}
	return docstore.Document{}, fmt.Errorf("failed to allocate slug for %q: %w", base, lastErr)
}
