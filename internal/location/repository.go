package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for locations.
type Repository interface {
	Create(ctx context.Context, loc *Location) error
	GetByID(ctx context.Context, id string) (*Location, error)
	List(ctx context.Context, filter LocationFilter) ([]*Location, int, error)
	Update(ctx context.Context, loc *Location) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// TIME columns are cast to text to scan into strings.
var locationColumns = []string{
	"l.id", "l.name", "l.address", "l.description",
	"l.opening_hours_start::text", "l.opening_hours_end::text", "l.opening", "l.created_at",
}

func scanLocation(row pgx.Row, extra ...any) (*Location, error) {
	var l Location
	dest := []any{
		&l.ID, &l.Name, &l.Address, &l.Description,
		&l.OpeningHoursStart, &l.OpeningHoursEnd, &l.Opening, &l.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *pgxRepository) Create(ctx context.Context, loc *Location) error {
	query, args, err := psql.Insert("public.locations").
		Columns("name", "address", "description", "opening_hours_start", "opening_hours_end", "opening").
		Values(loc.Name, loc.Address, loc.Description, loc.OpeningHoursStart, loc.OpeningHoursEnd, loc.Opening).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create location query failed: %w", err)
	}

	// Postgres casts "HH:MM:SS" strings to TIME.
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&loc.ID, &loc.CreatedAt); err != nil {
		return fmt.Errorf("create location failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Location, error) {
	query, args, err := psql.Select(locationColumns...).
		From("public.locations l").
		Where(squirrel.Eq{"l.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get location query failed: %w", err)
	}

	l, err := scanLocation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get location failed: %w", err)
	}
	return l, nil
}

func (r *pgxRepository) List(ctx context.Context, filter LocationFilter) ([]*Location, int, error) {
	query := psql.Select(append(locationColumns, "count(*) OVER() AS total_count")...).
		From("public.locations l")

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"l.name": kw},
			squirrel.ILike{"l.address": kw},
		})
	}
	if filter.Opening != nil {
		query = query.Where(squirrel.Eq{"l.opening": *filter.Opening})
	}

	orderBy := "l.created_at"
	if filter.SortBy == "name" {
		orderBy = "l.name"
	}
	orderDir := "DESC"
	if filter.SortOrder == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list locations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list locations failed: %w", err)
	}
	defer rows.Close()

	var locations []*Location
	var total int

	for rows.Next() {
		l, err := scanLocation(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan location failed: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate locations failed: %w", err)
	}

	return locations, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, loc *Location) error {
	query, args, err := psql.Update("public.locations").
		Set("name", loc.Name).
		Set("address", loc.Address).
		Set("description", loc.Description).
		Set("opening_hours_start", loc.OpeningHoursStart).
		Set("opening_hours_end", loc.OpeningHoursEnd).
		Set("opening", loc.Opening).
		Where(squirrel.Eq{"id": loc.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update location query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update location failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete location query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete location failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
