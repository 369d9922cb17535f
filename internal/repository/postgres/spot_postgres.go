package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"spotapi/internal/model"
	"spotapi/internal/repository"
)

// SpotPostgres is a PostgreSQL implementation of repository.SpotRepository.
// The collection is a table whose primary key is the spot name.
type SpotPostgres struct {
	db    *sql.DB
	table string
}

// NewSpotPostgres creates a repository over the given table (e.g. "tempat_wisata").
func NewSpotPostgres(db *sql.DB, table string) *SpotPostgres {
	return &SpotPostgres{db: db, table: pgx.Identifier{table}.Sanitize()}
}

var _ repository.SpotRepository = (*SpotPostgres)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanSpot(s scanner) (model.Spot, error) {
	var (
		out model.Spot
		img sql.NullString
	)
	if err := s.Scan(&out.Name, &out.Description, &img); err != nil {
		return model.Spot{}, err
	}
	if img.Valid {
		out.ImageRef = &img.String
	}
	return out, nil
}

// List returns all rows without ordering.
func (r *SpotPostgres) List(ctx context.Context) ([]model.Spot, error) {
	q := fmt.Sprintf(`SELECT nama, deskripsi, gambar_uri_string FROM %s`, r.table)

	items := make([]model.Spot, 0)
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return items, err
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return make([]model.Spot, 0), err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return make([]model.Spot, 0), err
	}
	return items, nil
}

// FindByName fetches a single spot by its name.
func (r *SpotPostgres) FindByName(ctx context.Context, name string) (*model.Spot, error) {
	q := fmt.Sprintf(`SELECT nama, deskripsi, gambar_uri_string FROM %s WHERE nama = $1`, r.table)

	s, err := scanSpot(r.db.QueryRowContext(ctx, q, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Upsert inserts the row or replaces every column of the existing one.
func (r *SpotPostgres) Upsert(ctx context.Context, spot model.Spot) (*model.Spot, error) {
	q := fmt.Sprintf(`
		INSERT INTO %s (nama, deskripsi, gambar_uri_string)
		VALUES ($1, $2, $3)
		ON CONFLICT (nama) DO UPDATE
		SET deskripsi = EXCLUDED.deskripsi, gambar_uri_string = EXCLUDED.gambar_uri_string
		RETURNING nama, deskripsi, gambar_uri_string
	`, r.table)

	var img sql.NullString
	if spot.ImageRef != nil {
		img = sql.NullString{String: *spot.ImageRef, Valid: true}
	}
	out, err := scanSpot(r.db.QueryRowContext(ctx, q, spot.Name, spot.Description, img))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a spot by name. A missing row is not an error.
func (r *SpotPostgres) Delete(ctx context.Context, name string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE nama = $1`, r.table)
	_, err := r.db.ExecContext(ctx, q, name)
	return err
}

func (r *SpotPostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
