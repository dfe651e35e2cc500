// адаптер документного хранилища: типизированные JSON-документы,
// декларативный язык запросов с именованными параметрами, патчи и транзакции
package docstore

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrConflict     = errors.New("unique constraint violation")
	ErrInvalidQuery = errors.New("invalid query")
)

// Document - один документ хранилища.
// В Fields только JSON-совместимые значения: string, float64, bool, nil, []any, map[string]any
type Document struct {
	ID        string
	Type      string
	Seq       int64 // порядок вставки, последний ключ любой сортировки
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    map[string]any

	// документы по ссылкам из Query.Expand, ключ - имя ссылочного поля
	Refs map[string]Document
}

// Store - интерфейс адаптера хранилища, его используют все репозитории
type Store interface {
	Fetch(ctx context.Context, q Query) ([]Document, error)
	Count(ctx context.Context, q Query) (int, error)
	Get(ctx context.Context, id string) (Document, error)
	Create(ctx context.Context, docType string, fields map[string]any) (Document, error)
	Patch(id string) *Patch
	Delete(ctx context.Context, id string) error

	// Transact выполняет fn внутри транзакции; ошибка fn откатывает все изменения через tx
	Transact(ctx context.Context, fn func(tx Store) error) error
}

// PatchCommitter применяет собранный патч, реализуется хранилищами
type PatchCommitter interface {
	CommitPatch(ctx context.Context, p *Patch) (Document, error)
}

// Patch - набор изменений полей верхнего уровня одного документа.
// Порядок применения: setIfMissing, set, unset, inc
type Patch struct {
	id           string
	sets         map[string]any
	setIfMissing map[string]any
	unsets       []string
	incs         map[string]float64
	committer    PatchCommitter
}

// конструктор патча
func NewPatch(id string, committer PatchCommitter) *Patch {
	return &Patch{
		id:           id,
		sets:         map[string]any{},
		setIfMissing: map[string]any{},
		incs:         map[string]float64{},
		committer:    committer,
	}
}

func (p *Patch) Set(field string, value any) *Patch {
	p.sets[field] = value
	return p
}

// SetAll - Set для каждого поля карты
func (p *Patch) SetAll(fields map[string]any) *Patch {
	for k, v := range fields {
		p.sets[k] = v
	}
	return p
}

// SetIfMissing пишет поле, только если его нет или оно null
func (p *Patch) SetIfMissing(field string, value any) *Patch {
	p.setIfMissing[field] = value
	return p
}

func (p *Patch) Unset(field string) *Patch {
	p.unsets = append(p.unsets, field)
	return p
}

// Inc прибавляет n к числовому полю, отсутствующее поле считается нулём
func (p *Patch) Inc(field string, n float64) *Patch {
	p.incs[field] += n
	return p
}

func (p *Patch) Commit(ctx context.Context) (Document, error) {
	if p.committer == nil {
		return Document{}, errors.New("patch is not bound to a store")
	}
	return p.committer.CommitPatch(ctx, p)
}

func (p *Patch) ID() string { return p.id }

// Empty - патч ничего не меняет
func (p *Patch) Empty() bool {
	return len(p.sets) == 0 && len(p.setIfMissing) == 0 && len(p.unsets) == 0 && len(p.incs) == 0
}

// Apply применяет патч к копии полей; используется обеими реализациями хранилища
func (p *Patch) Apply(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields)+len(p.sets))
	for k, v := range fields {
		out[k] = v
	}

	for k, v := range p.setIfMissing {
		if cur, ok := out[k]; !ok || cur == nil {
			out[k] = v
		}
	}
	for k, v := range p.sets {
		out[k] = v
	}
	for _, k := range p.unsets {
		delete(out, k)
	}
	for k, n := range p.incs {
		cur := 0.0
		if v, ok := out[k]; ok && v != nil {
			f, ok := v.(float64)
			if !ok {
				return nil, errors.New("inc on non-numeric field " + k)
			}
			cur = f
		}
		out[k] = cur + n
	}

	return Normalize(out)
}
