package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pruizcastillo-design/Oposecurity/internal/db"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
)

// SQLiteAnswerKeyRepo implements AnswerKeyRepo over the answer_keys and
// answer_key_entries tables.
type SQLiteAnswerKeyRepo struct {
	db db.DBTX
}

func NewSQLiteAnswerKeyRepo(conn db.DBTX) *SQLiteAnswerKeyRepo {
	return &SQLiteAnswerKeyRepo{db: conn}
}

// Create writes the header and every entry. Callers that need atomicity run
// it inside a UnitOfWork.
func (r *SQLiteAnswerKeyRepo) Create(ctx context.Context, k *domain.AnswerKey) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO answer_keys (id, name, created_at) VALUES (?, ?, ?)`,
		k.ID, k.Name, formatTime(k.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("answer key %q: %w", k.Name, ErrDuplicateName)
		}
		return fmt.Errorf("inserting answer key: %w", err)
	}

	for i, a := range k.Answers {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO answer_key_entries (key_id, position, answer) VALUES (?, ?, ?)`,
			k.ID, i, string(a),
		)
		if err != nil {
			return fmt.Errorf("inserting answer %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *SQLiteAnswerKeyRepo) GetByID(ctx context.Context, id string) (*domain.AnswerKey, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM answer_keys WHERE id = ?`, id)
	return r.load(ctx, row)
}

func (r *SQLiteAnswerKeyRepo) GetByName(ctx context.Context, name string) (*domain.AnswerKey, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM answer_keys WHERE name = ?`, name)
	return r.load(ctx, row)
}

// List returns every key with its answers, ordered by name.
func (r *SQLiteAnswerKeyRepo) List(ctx context.Context) ([]*domain.AnswerKey, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT k.id, k.name, k.created_at, e.answer
		FROM answer_keys k
		LEFT JOIN answer_key_entries e ON e.key_id = k.id
		ORDER BY k.name, e.position`)
	if err != nil {
		return nil, fmt.Errorf("listing answer keys: %w", err)
	}
	defer rows.Close()

	var keys []*domain.AnswerKey
	var cur *domain.AnswerKey
	for rows.Next() {
		var id, name, createdAt string
		var answer sql.NullString
		if err := rows.Scan(&id, &name, &createdAt, &answer); err != nil {
			return nil, fmt.Errorf("scanning answer key row: %w", err)
		}
		if cur == nil || cur.ID != id {
			created, err := parseTime(createdAt)
			if err != nil {
				return nil, fmt.Errorf("parsing created_at: %w", err)
			}
			cur = &domain.AnswerKey{ID: id, Name: name, CreatedAt: created}
			keys = append(keys, cur)
		}
		if answer.Valid {
			cur.Answers = append(cur.Answers, domain.Option(answer.String))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating answer keys: %w", err)
	}
	return keys, nil
}

func (r *SQLiteAnswerKeyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM answer_keys WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting answer key: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("answer key %s: %w", id, ErrNotFound)
	}
	return nil
}

// load scans a header row and then reads its entries. The header row is
// fully consumed before the second query runs.
func (r *SQLiteAnswerKeyRepo) load(ctx context.Context, row *sql.Row) (*domain.AnswerKey, error) {
	var k domain.AnswerKey
	var createdAt string
	if err := row.Scan(&k.ID, &k.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("answer key: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning answer key: %w", err)
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	k.CreatedAt = created

	rows, err := r.db.QueryContext(ctx,
		`SELECT answer FROM answer_key_entries WHERE key_id = ? ORDER BY position`, k.ID)
	if err != nil {
		return nil, fmt.Errorf("loading answers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scanning answer: %w", err)
		}
		k.Answers = append(k.Answers, domain.Option(a))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating answers: %w", err)
	}
	return &k, nil
}
