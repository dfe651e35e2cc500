// хранилище документов в памяти: та же семантика запросов и ограничений уникальности,
// что и у pgstore; используется для разработки, тестов и режима DOCSTORE_DRIVER=memory
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard/board_service/internal/docstore"

	"github.com/google/uuid"
)

// Constraint - ограничение уникальности по набору полей одного типа документов.
// Документы без любого из полей ограничение не затрагивает. Fold - сравнение без учёта регистра
type Constraint struct {
	Type   string
	Fields []string
	Fold   bool
}

// DefaultConstraints совпадают с уникальными индексами схемы pgstore
var DefaultConstraints = []Constraint{
	{Type: "job", Fields: []string{"slug"}},
	{Type: "company", Fields: []string{"slug"}},
	{Type: "category", Fields: []string{"slug"}},
	{Type: "user", Fields: []string{"email"}, Fold: true},
	{Type: "application", Fields: []string{"job", "applicantEmail"}, Fold: true},
	{Type: "follow", Fields: []string{"user", "company"}},
}

// структура хранилища
type Store struct {
	mu          sync.RWMutex
	docs        map[string]docstore.Document
	seq         int64
	constraints []Constraint
	now         func() time.Time
}

type Option func(*Store)

// WithClock подменяет источник времени для CreatedAt/UpdatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithConstraints заменяет набор ограничений уникальности
func WithConstraints(c ...Constraint) Option {
	return func(s *Store) { s.constraints = c }
}

// конструктор хранилища
func New(opts ...Option) *Store {
	s := &Store{
		docs:        make(map[string]docstore.Document),
		constraints: DefaultConstraints,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ docstore.Store          = (*Store)(nil)
	_ docstore.PatchCommitter = (*Store)(nil)
	_ docstore.Store          = (*txStore)(nil)
)

func (s *Store) Fetch(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetch(q)
}

func (s *Store) Count(ctx context.Context, q docstore.Query) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count(q)
}

func (s *Store) Get(ctx context.Context, id string) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return docstore.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(id)
}

func (s *Store) Create(ctx context.Context, docType string, fields map[string]any) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return docstore.Document{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(docType, fields)
}

func (s *Store) Patch(id string) *docstore.Patch {
	return docstore.NewPatch(id, s)
}

func (s *Store) CommitPatch(ctx context.Context, p *docstore.Patch) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return docstore.Document{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(p)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delete(id)
}

// Transact держит блокировку записи всё время выполнения fn; при ошибке или панике
// состояние восстанавливается из снимка. fn должна работать только через tx
func (s *Store) Transact(ctx context.Context, fn func(tx docstore.Store) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]docstore.Document, len(s.docs))
	for k, v := range s.docs {
		snapshot[k] = v
	}
	seq := s.seq

	defer func() {
		if r := recover(); r != nil {
			s.docs, s.seq = snapshot, seq
			panic(r)
		}
		if err != nil {
			s.docs, s.seq = snapshot, seq
		}
	}()

	return fn(&txStore{s: s})
}

// Len - количество документов всех типов
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (s *Store) fetch(q docstore.Query) ([]docstore.Document, error) {
	matched, err := s.match(q)
	if err != nil {
		return nil, err
	}

	keys := make([]docstore.Path, len(q.Order))
	for i, o := range q.Order {
		keys[i], _ = docstore.ParsePath(o.Field)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		for k, o := range q.Order {
			c := compareForOrder(s.resolve(matched[i], keys[k]), s.resolve(matched[j], keys[k]), o.Desc)
			if c != 0 {
				return c < 0
			}
		}
		return matched[i].Seq < matched[j].Seq
	})

	if q.Offset >= len(matched) {
		return []docstore.Document{}, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}

	out := make([]docstore.Document, len(matched))
	for i, d := range matched {
		out[i] = s.expand(cloneDocument(d), q.Expand)
	}
	return out, nil
}

func (s *Store) count(q docstore.Query) (int, error) {
	matched, err := s.match(q.CountQuery())
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (s *Store) match(q docstore.Query) ([]docstore.Document, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	params := make(docstore.Params, len(q.Params))
	for k, v := range q.Params {
		params[k] = docstore.NormalizeParam(v)
	}

	var matched []docstore.Document
	for _, d := range s.docs {
		if d.Type != q.Type {
			continue
		}
		if q.Filter == nil || s.eval(d, q.Filter, params) {
			matched = append(matched, d)
		}
	}

	// обход карты случаен, базовый порядок - порядок вставки
	sort.Slice(matched, func(i, j int) bool { return matched[i].Seq < matched[j].Seq })
	return matched, nil
}

func (s *Store) get(id string) (docstore.Document, error) {
	d, ok := s.docs[id]
	if !ok {
		return docstore.Document{}, fmt.Errorf("%w: %s", docstore.ErrNotFound, id)
	}
	return cloneDocument(d), nil
}

func (s *Store) create(docType string, fields map[string]any) (docstore.Document, error) {
	if docType == "" {
		return docstore.Document{}, fmt.Errorf("%w: document type is required", docstore.ErrInvalidQuery)
	}
	normalized, err := docstore.Normalize(fields)
	if err != nil {
		return docstore.Document{}, err
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	d := docstore.Document{
		ID:        uuid.NewString(),
		Type:      docType,
		Seq:       s.seq + 1,
		CreatedAt: now,
		UpdatedAt: now,
		Fields:    normalized,
	}
	if err := s.checkUnique(d); err != nil {
		return docstore.Document{}, err
	}

	s.seq++
	s.docs[d.ID] = d
	return cloneDocument(d), nil
}

func (s *Store) commit(p *docstore.Patch) (docstore.Document, error) {
	d, ok := s.docs[p.ID()]
	if !ok {
		return docstore.Document{}, fmt.Errorf("%w: %s", docstore.ErrNotFound, p.ID())
	}

	fields, err := p.Apply(d.Fields)
	if err != nil {
		return docstore.Document{}, err
	}
	d.Fields = fields
	d.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)

	if err := s.checkUnique(d); err != nil {
		return docstore.Document{}, err
	}
	s.docs[d.ID] = d
	return cloneDocument(d), nil
}

func (s *Store) delete(id string) error {
	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("%w: %s", docstore.ErrNotFound, id)
	}
	delete(s.docs, id)
	return nil
}

func (s *Store) checkUnique(d docstore.Document) error {
	for _, c := range s.constraints {
		if c.Type != d.Type {
			continue
		}
		key, ok := uniqueKey(c, d)
		if !ok {
			continue
		}
		for _, other := range s.docs {
			if other.ID == d.ID || other.Type != d.Type {
				continue
			}
			if otherKey, ok := uniqueKey(c, other); ok && otherKey == key {
				return fmt.Errorf("%w: %s(%s)", docstore.ErrConflict, d.Type, strings.Join(c.Fields, ", "))
			}
		}
	}
	return nil
}

func uniqueKey(c Constraint, d docstore.Document) (string, bool) {
	parts := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		v, ok := d.Fields[f]
		if !ok || v == nil {
			return "", false
		}
		s := fmt.Sprint(v)
		if c.Fold {
			s = strings.ToLower(s)
		}
		parts[i] = s
	}
	return strings.Join(parts, "\x00"), true
}

func (s *Store) expand(d docstore.Document, refs []string) docstore.Document {
	if len(refs) == 0 {
		return d
	}
	d.Refs = make(map[string]docstore.Document, len(refs))
	for _, ref := range refs {
		id, ok := d.Fields[ref].(string)
		if !ok {
			continue
		}
		if target, ok := s.docs[id]; ok {
			d.Refs[ref] = cloneDocument(target)
		}
	}
	return d
}

// txStore - представление хранилища внутри Transact, блокировка уже захвачена
type txStore struct {
	s *Store
}

func (t *txStore) Fetch(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.s.fetch(q)
}

func (t *txStore) Count(ctx context.Context, q docstore.Query) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return t.s.count(q)
}

func (t *txStore) Get(ctx context.Context, id string) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return docstore.Document{}, err
	}
	return t.s.get(id)
}

func (t *txStore) Create(ctx context.Context, docType string, fields map[string]any) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return docstore.Document{}, err
	}
	return t.s.create(docType, fields)
}

func (t *txStore) Patch(id string) *docstore.Patch {
	return docstore.NewPatch(id, t)
}

func (t *txStore) CommitPatch(ctx context.Context, p *docstore.Patch) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return docstore.Document{}, err
	}
	return t.s.commit(p)
}

func (t *txStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.s.delete(id)
}

// вложенная транзакция выполняется в рамках внешней
func (t *txStore) Transact(ctx context.Context, fn func(tx docstore.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t)
}
