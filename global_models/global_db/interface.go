// абстракции над SQL хранилищем, общие для всех сервисов
package global_db

import "context"

// Querier - общий набор операций для пула и для транзакции,
// позволяет выполнять один и тот же код внутри и вне транзакции
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Pool - пул соединений
type Pool interface {
	Querier
	Begin(ctx context.Context) (Tx, error)
	Close() error
}

// абстракция для одной записи
type Row interface {
	Scan(dest ...any) error
}

// абстракция для набора записей
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

// абстракция для транзакции
type Tx interface {
	Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
