package store

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// New returns a Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds the document statements.
type Queries struct {
	db DBTX
}

// WithTx returns a Queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// DocumentRow is one row of the documents table.
type DocumentRow struct {
	Collection  string
	Slug        string
	Title       string
	Description string
	Body        string
	PublishedAt sql.NullTime
	UpdatedAt   sql.NullTime
	Tags        string // JSON array
	Draft       bool
	Category    sql.NullString
	Author      sql.NullString
	NoIndex     bool
}

const documentColumns = `collection, slug, title, description, body, published_at, updated_at, tags, draft, category, author, noindex`

func scanDocument(row interface{ Scan(...any) error }) (DocumentRow, error) {
	var d DocumentRow
	err := row.Scan(
		&d.Collection,
		&d.Slug,
		&d.Title,
		&d.Description,
		&d.Body,
		&d.PublishedAt,
		&d.UpdatedAt,
		&d.Tags,
		&d.Draft,
		&d.Category,
		&d.Author,
		&d.NoIndex,
	)
	return d, err
}

const listDocuments = `SELECT ` + documentColumns + `
FROM documents
WHERE collection = ?
ORDER BY slug`

// ListDocuments returns every row of a collection, drafts included.
func (q *Queries) ListDocuments(ctx context.Context, collection string) ([]DocumentRow, error) {
	rows, err := q.db.QueryContext(ctx, listDocuments, collection)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []DocumentRow
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getDocument = `SELECT ` + documentColumns + `
FROM documents
WHERE collection = ? AND slug = ?`

// GetDocument returns one row or sql.ErrNoRows.
func (q *Queries) GetDocument(ctx context.Context, collection, slug string) (DocumentRow, error) {
	return scanDocument(q.db.QueryRowContext(ctx, getDocument, collection, slug))
}

const upsertDocument = `INSERT INTO documents (` + documentColumns + `, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (collection, slug) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    body = excluded.body,
    published_at = excluded.published_at,
    updated_at = excluded.updated_at,
    tags = excluded.tags,
    draft = excluded.draft,
    category = excluded.category,
    author = excluded.author,
    noindex = excluded.noindex`

// UpsertDocument inserts a row or replaces the one with the same key.
func (q *Queries) UpsertDocument(ctx context.Context, d DocumentRow, now time.Time) error {
	_, err := q.db.ExecContext(ctx, upsertDocument,
		d.Collection,
		d.Slug,
		d.Title,
		d.Description,
		d.Body,
		d.PublishedAt,
		d.UpdatedAt,
		d.Tags,
		d.Draft,
		d.Category,
		d.Author,
		d.NoIndex,
		now,
	)
	return err
}

const deleteDocument = `DELETE FROM documents WHERE collection = ? AND slug = ?`

// DeleteDocument removes one row.
func (q *Queries) DeleteDocument(ctx context.Context, collection, slug string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteDocument, collection, slug)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countDocuments = `SELECT COUNT(*) FROM documents WHERE collection = ?`

// CountDocuments returns the number of rows in a collection.
func (q *Queries) CountDocuments(ctx context.Context, collection string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countDocuments, collection).Scan(&n)
	return n, err
}
