// хранилище документов поверх PostgreSQL: одна таблица documents с jsonb-данными
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobboard/board_service/internal/docstore"
	"jobboard/global_models/global_db"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const uniqueViolation = "23505"

// структура хранилища; внутри транзакции pool == nil, а db - текущая транзакция
type Store struct {
	db   global_db.Querier
	pool global_db.Pool
	now  func() time.Time
}

// конструктор хранилища поверх пула соединений
func New(pool global_db.Pool) *Store {
	return &Store{db: pool, pool: pool, now: time.Now}
}

var (
	_ docstore.Store          = (*Store)(nil)
	_ docstore.PatchCommitter = (*Store)(nil)
)

// Migrate создаёт таблицу и индексы, повторный вызов безопасен
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply documents schema: %w", err)
	}
	return nil
}

func (s *Store) Fetch(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sql, args, err := renderSelect(q)
	if err != nil {
		return nil, err
	}

	docs, err := s.queryDocuments(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s documents: %w", q.Type, err)
	}

	if len(q.Expand) > 0 {
		if err := s.expand(ctx, docs, q.Expand); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (s *Store) Count(ctx context.Context, q docstore.Query) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	sql, args, err := renderCount(q)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s documents: %w", q.Type, err)
	}
	return int(total), nil
}

func (s *Store) Get(ctx context.Context, id string) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return docstore.Document{}, err
	}

	const query = `SELECT ` + documentColumns + ` FROM documents d WHERE d.id = $1`
	d, err := scanDocument(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return docstore.Document{}, fmt.Errorf("%w: %s", docstore.ErrNotFound, id)
		}
		return docstore.Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	return d, nil
}

func (s *Store) Create(ctx context.Context, docType string, fields map[string]any) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return docstore.Document{}, err
	}
	if docType == "" {
		return docstore.Document{}, fmt.Errorf("%w: document type is required", docstore.ErrInvalidQuery)
	}

	normalized, err := docstore.Normalize(fields)
	if err != nil {
		return docstore.Document{}, err
	}
	data, err := json.Marshal(normalized)
	if err != nil {
		return docstore.Document{}, fmt.Errorf("failed to encode document: %w", err)
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	d := docstore.Document{
		ID:        uuid.NewString(),
		Type:      docType,
		CreatedAt: now,
		UpdatedAt: now,
		Fields:    normalized,
	}

	const query = `
        INSERT INTO documents (id, doc_type, data, created_at, updated_at)
        VALUES ($1, $2, $3::jsonb, $4, $4)
        RETURNING seq
    `
	if err := s.db.QueryRow(ctx, query, d.ID, docType, string(data), now).Scan(&d.Seq); err != nil {
		return docstore.Document{}, translateError(err, "failed to create document")
	}
	return d, nil
}

func (s *Store) Patch(id string) *docstore.Patch {
	return docstore.NewPatch(id, s)
}

// CommitPatch блокирует строку, применяет патч и пишет результат в одной транзакции
func (s *Store) CommitPatch(ctx context.Context, p *docstore.Patch) (docstore.Document, error) {
	var out docstore.Document
	err := s.Transact(ctx, func(tx docstore.Store) error {
		txs := tx.(*Store)

		const selectQuery = `SELECT ` + documentColumns + ` FROM documents d WHERE d.id = $1 FOR UPDATE`
		d, err := scanDocument(txs.db.QueryRow(ctx, selectQuery, p.ID()))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: %s", docstore.ErrNotFound, p.ID())
			}
			return fmt.Errorf("failed to lock document: %w", err)
		}

		fields, err := p.Apply(d.Fields)
		if err != nil {
			return err
		}
		data, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}

		d.Fields = fields
		d.UpdatedAt = txs.now().UTC().Truncate(time.Millisecond)

		const updateQuery = `UPDATE documents SET data = $2::jsonb, updated_at = $3 WHERE id = $1`
		if _, err := txs.db.Exec(ctx, updateQuery, d.ID, string(data), d.UpdatedAt); err != nil {
			return translateError(err, "failed to update document")
		}
		out = d
		return nil
	})
	return out, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	affected, err := s.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", docstore.ErrNotFound, id)
	}
	return nil
}

// Transact открывает транзакцию; внутри транзакции fn выполняется в текущей
func (s *Store) Transact(ctx context.Context, fn func(tx docstore.Store) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
			}
		}
	}()

	if err = fn(&Store{db: tx, now: s.now}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return translateError(err, "failed to commit transaction")
	}
	return nil
}

func (s *Store) queryDocuments(ctx context.Context, sql string, args ...any) ([]docstore.Document, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]docstore.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// expand подгружает ссылочные документы одним запросом
func (s *Store) expand(ctx context.Context, docs []docstore.Document, refs []string) error {
	seen := map[string]bool{}
	ids := make([]string, 0)
	for _, d := range docs {
		for _, ref := range refs {
			if id, ok := d.Fields[ref].(string); ok && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	const query = `SELECT ` + documentColumns + ` FROM documents d WHERE d.id = ANY($1::text[])`
	targets, err := s.queryDocuments(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to expand references: %w", err)
	}

	byID := make(map[string]docstore.Document, len(targets))
	for _, t := range targets {
		byID[t.ID] = t
	}
	for i := range docs {
		docs[i].Refs = make(map[string]docstore.Document, len(refs))
		for _, ref := range refs {
			if id, ok := docs[i].Fields[ref].(string); ok {
				if t, ok := byID[id]; ok {
					docs[i].Refs[ref] = t
				}
			}
		}
	}
	return nil
}

func scanDocument(row global_db.Row) (docstore.Document, error) {
	var (
		d    docstore.Document
		data []byte
	)
	if err := row.Scan(&d.ID, &d.Type, &d.Seq, &data, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return docstore.Document{}, err
	}
	if err := json.Unmarshal(data, &d.Fields); err != nil {
		return docstore.Document{}, fmt.Errorf("failed to decode document %s: %w", d.ID, err)
	}
	if d.Fields == nil {
		d.Fields = map[string]any{}
	}
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	return d, nil
}

// translateError: нарушение уникального индекса -> docstore.ErrConflict
func translateError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", docstore.ErrConflict, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
