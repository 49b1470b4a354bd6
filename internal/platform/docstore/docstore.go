// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package docstore stores catalog documents as JSONB rows in PostgreSQL.

Each collection is a table with the same layout (see schema.CollectionTable):
the identifier, a sort key, the whole document and bookkeeping timestamps.
A [Collection] offers the operations every catalog resource needs:

  - Lookup by identifier.
  - Paged listing ordered by sort key.
  - Case-insensitive full match on the sort key.
  - Insert, full replace and delete returning the removed document.

Queries are built with squirrel and executed through a [Querier], so both a
pgxpool.Pool and a pgxmock pool can back a collection.
*/
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/recursos/internal/platform/database/schema"
	"github.com/taibuivan/recursos/internal/platform/dberr"
)

// Querier is the subset of pgxpool.Pool used by a [Collection].
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Document is implemented by every type stored in a [Collection].
type Document interface {
	// DocumentID returns the document identifier.
	DocumentID() string
	// DocumentKey returns the canonical sort key (nombre or titulo).
	DocumentKey() string
}

// builder renders PostgreSQL placeholders ($1, $2, ...).
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Collection is a typed view over one collection table.
type Collection[T Document] struct {
	db    Querier
	table schema.CollectionTable
}

// NewCollection binds a collection table to a querier.
func NewCollection[T Document](db Querier, table schema.CollectionTable) *Collection[T] {
	return &Collection[T]{db: db, table: table}
}

// Name returns the collection name (e.g. "temas").
func (c *Collection[T]) Name() string { return c.table.Name }

/*
FindByID fetches a single document.

Returns:
  - T: The decoded document
  - error: dberr.ErrNotFound when no row matches
*/
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	query := builder.
		Select(c.table.Doc).
		From(c.table.Table).
		Where(sq.Eq{c.table.ID: id})

	return c.queryOne(ctx, query, "find_"+c.table.Name)
}

/*
Find returns up to limit documents after skipping offset, ordered by sort key.

The identifier breaks ties so pages are stable across equal names.
*/
func (c *Collection[T]) Find(ctx context.Context, offset, limit int) ([]T, error) {
	if offset < 0 || limit < 1 {
		return nil, fmt.Errorf("docstore: invalid window offset=%d limit=%d", offset, limit)
	}

	query := builder.
		Select(c.table.Doc).
		From(c.table.Table).
		OrderBy(c.table.SortKey+" ASC", c.table.ID+" ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sqlText, args, err := query.ToSql()
	if err != nil {
		return nil, dberr.Wrap(err, "build_list_"+c.table.Name)
	}

	rows, err := c.db.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_"+c.table.Name)
	}
	defer rows.Close()

	docs := make([]T, 0, limit)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, dberr.Wrap(err, "scan_"+c.table.Name)
		}

		doc, err := decode[T](raw)
		if err != nil {
			return nil, dberr.Wrap(err, "decode_"+c.table.Name)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_"+c.table.Name)
	}

	return docs, nil
}

// Count returns the number of documents in the collection.
func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	sqlText, args, err := builder.Select("count(*)").From(c.table.Table).ToSql()
	if err != nil {
		return 0, dberr.Wrap(err, "build_count_"+c.table.Name)
	}

	var total int
	if err := c.db.QueryRow(ctx, sqlText, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_"+c.table.Name)
	}
	return total, nil
}

/*
ExistsKeyFold reports whether another document's sort key equals key,
ignoring letter case. The match is anchored: "tema" does not match "tema1".

A non-empty excludeID skips that document, which lets an update keep its own name.
*/
func (c *Collection[T]) ExistsKeyFold(ctx context.Context, key, excludeID string) (bool, error) {
	inner := builder.
		Select("1").
		From(c.table.Table).
		Where(sq.Expr("lower("+c.table.SortKey+") = lower(?)", key))

	if excludeID != "" {
		inner = inner.Where(sq.NotEq{c.table.ID: excludeID})
	}

	sqlText, args, err := inner.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, dberr.Wrap(err, "build_exists_"+c.table.Name)
	}

	var exists bool
	if err := c.db.QueryRow(ctx, sqlText, args...).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "exists_"+c.table.Name)
	}
	return exists, nil
}

// Insert persists a new document.
func (c *Collection[T]) Insert(ctx context.Context, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return dberr.Wrap(err, "encode_"+c.table.Name)
	}

	query := builder.
		Insert(c.table.Table).
		Columns(c.table.ID, c.table.SortKey, c.table.Doc).
		Values(doc.DocumentID(), doc.DocumentKey(), raw)

	return c.exec(ctx, query, "insert_"+c.table.Name, false)
}

/*
Replace overwrites the stored document with the same identifier.

Returns:
  - error: dberr.ErrNotFound when the identifier does not exist
*/
func (c *Collection[T]) Replace(ctx context.Context, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return dberr.Wrap(err, "encode_"+c.table.Name)
	}

	query := builder.
		Update(c.table.Table).
		Set(c.table.SortKey, doc.DocumentKey()).
		Set(c.table.Doc, raw).
		Set(c.table.UpdatedAt, sq.Expr("now()")).
		Where(sq.Eq{c.table.ID: doc.DocumentID()})

	return c.exec(ctx, query, "replace_"+c.table.Name, true)
}

/*
Delete removes a document and returns it as it was stored.

Returns:
  - error: dberr.ErrNotFound when nothing was removed
*/
func (c *Collection[T]) Delete(ctx context.Context, id string) (T, error) {
	query := builder.
		Delete(c.table.Table).
		Where(sq.Eq{c.table.ID: id}).
		Suffix("RETURNING " + c.table.Doc)

	return c.queryOne(ctx, query, "delete_"+c.table.Name)
}

// # Helpers

func (c *Collection[T]) queryOne(ctx context.Context, query sq.Sqlizer, action string) (T, error) {
	var zero T

	sqlText, args, err := query.ToSql()
	if err != nil {
		return zero, dberr.Wrap(err, "build_"+action)
	}

	var raw []byte
	if err := c.db.QueryRow(ctx, sqlText, args...).Scan(&raw); err != nil {
		return zero, dberr.Wrap(err, action)
	}

	doc, err := decode[T](raw)
	if err != nil {
		return zero, dberr.Wrap(err, "decode_"+action)
	}
	return doc, nil
}

func (c *Collection[T]) exec(ctx context.Context, query sq.Sqlizer, action string, mustMatch bool) error {
	sqlText, args, err := query.ToSql()
	if err != nil {
		return dberr.Wrap(err, "build_"+action)
	}

	tag, err := c.db.Exec(ctx, sqlText, args...)
	if err != nil {
		return dberr.Wrap(err, action)
	}

	if mustMatch && tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func decode[T any](raw []byte) (T, error) {
	var doc T
	if len(raw) == 0 {
		return doc, errors.New("docstore: empty document")
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("docstore: %w", err)
	}
	return doc, nil
}
