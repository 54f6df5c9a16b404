package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/airadmin/config"
	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	TableUsers    = "users"
	TableFlights  = "flights"
	TableBookings = "booking"
)

// Tables lists every table the store owns, in dependency order.
var Tables = []string{TableUsers, TableFlights, TableBookings}

const timestampLayout = "2006-01-02 15:04:05"

type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// DB is the storage accessor shared by the repositories. Queries are written
// with ? placeholders and rebound for the configured dialect.
type DB struct {
	sql     *sql.DB
	dialect Dialect
}

func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	var (
		db  *sql.DB
		err error
		d   Dialect
	)

	switch cfg.Driver {
	case config.DriverSQLite, "":
		d = DialectSQLite
		db, err = sql.Open("sqlite", sqliteDSN(cfg.Path))
		if err != nil {
			return nil, err
		}
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(30 * time.Minute)
	case config.DriverPostgres:
		d = DialectPostgres
		db, err = sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{sql: db, dialect: d}, nil
}

func sqliteDSN(path string) string {
	return "file:" + path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)"
}

func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) Dialect() Dialect {
	return d.dialect
}

func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

// CountRows counts the rows of one of the store's tables.
func (d *DB) CountRows(ctx context.Context, table string) (int, error) {
	if !isTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	if err := d.queryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func isTable(name string) bool {
	for _, t := range Tables {
		if t == name {
			return true
		}
	}
	return false
}

// rebind turns ? placeholders into $n for postgres.
func (d *DB) rebind(q string) string {
	if d.dialect != DialectPostgres {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

func (d *DB) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	return d.sql.ExecContext(ctx, d.rebind(q), args...)
}

func (d *DB) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	return d.sql.QueryContext(ctx, d.rebind(q), args...)
}

func (d *DB) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	return d.sql.QueryRowContext(ctx, d.rebind(q), args...)
}

// inTx runs fn in a transaction on a connection held for the duration of
// the call. The connection is released on every exit path.
func (d *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	conn, err := d.sql.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// deleteFunc removes one row inside a transaction. Returning a not found or
// conflict error marks the id as failed without aborting a batch.
type deleteFunc func(ctx context.Context, tx *sql.Tx, id int64) error

// deleteEach runs del for every id sequentially in one transaction and
// commits once. The batch is not atomic: ids that fail are reported and
// skipped while the others are still deleted.
func (d *DB) deleteEach(ctx context.Context, ids []int64, del deleteFunc) (domain.BatchResult, error) {
	res := domain.BatchResult{Deleted: []int64{}, Failures: []domain.BatchFailure{}}

	err := d.inTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			err := del(ctx, tx, id)
			switch {
			case err == nil:
				res.Deleted = append(res.Deleted, id)
			case isRecordError(err):
				res.Fail(strconv.FormatInt(id, 10), err)
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.BatchResult{}, err
	}
	return res, nil
}

// guardedDelete deletes id from table. When refColumn is set, bookings
// referencing the row block the delete with a *domain.ConflictError.
func (d *DB) guardedDelete(ctx context.Context, tx *sql.Tx, table, entity, refColumn string, id int64) error {
	var one int
	err := tx.QueryRowContext(ctx, d.rebind(`SELECT 1 FROM `+table+` WHERE id = ?`), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound(entity)
	}
	if err != nil {
		return fmt.Errorf("find %s %d: %w", entity, id, err)
	}

	if refColumn != "" {
		var refs int
		if err := tx.QueryRowContext(ctx, d.rebind(`SELECT COUNT(*) FROM booking WHERE `+refColumn+` = ?`), id).Scan(&refs); err != nil {
			return fmt.Errorf("count bookings of %s %d: %w", entity, id, err)
		}
		if refs > 0 {
			return &domain.ConflictError{Entity: entity, ID: id, Count: refs}
		}
	}

	if _, err := tx.ExecContext(ctx, d.rebind(`DELETE FROM `+table+` WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete %s %d: %w", entity, id, err)
	}
	return nil
}

func isRecordError(err error) bool {
	var conflict *domain.ConflictError
	return errors.Is(err, domain.ErrNotFound) || errors.As(err, &conflict)
}

func isUniqueViolation(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
			strings.Contains(liteErr.Error(), "UNIQUE")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type scannable interface {
	Scan(dest ...any) error
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, s)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}
