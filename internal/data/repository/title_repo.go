package repository

import (
	"context"
	"fmt"

	"yamdb-api/internal/data/entity"
	"yamdb-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TitleFilter narrows title listings. Nil fields are ignored.
type TitleFilter struct {
	CategorySlug *string
	GenreSlug    *string
	Name         *string // substring match
	Year         *int    // exact match
}

type TitleRepository interface {
	Create(ctx context.Context, title *entity.Title) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error)
	FindAll(ctx context.Context, filter TitleFilter, limit, offset int) ([]*entity.Title, error)
	CountAll(ctx context.Context, filter TitleFilter) (int64, error)
	Update(ctx context.Context, title *entity.Title) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type titleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleRepository(db database.PgxIface, log *zap.Logger) TitleRepository {
	return &titleRepository{
		db:  db,
		log: log.With(zap.String("repository", "title")),
	}
}

// The rating column is the live AVG over reviews, recomputed per read.
// Nothing is persisted, so a new or deleted review shows up immediately.
const titleSelect = `
	SELECT t.id, t.name, t.year, t.description, t.category_id,
	       t.created_at, t.updated_at,
	       (SELECT AVG(r.score) FROM reviews r WHERE r.title_id = t.id) AS rating
	FROM titles t
`

func (r *titleRepository) Create(ctx context.Context, title *entity.Title) error {
	query := `
		INSERT INTO titles (id, name, year, description, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		title.ID,
		title.Name,
		title.Year,
		title.Description,
		title.CategoryID,
		title.CreatedAt,
		title.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create title",
			zap.Error(err),
			zap.String("name", title.Name),
		)
		return fmt.Errorf("create title %s: %w", title.Name, err)
	}

	return nil
}

func scanTitle(row pgx.Row) (*entity.Title, error) {
	var title entity.Title
	err := row.Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.CategoryID,
		&title.CreatedAt,
		&title.UpdatedAt,
		&title.Rating,
	)
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	query := titleSelect + ` WHERE t.id = $1`

	title, err := scanTitle(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find title by ID",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return nil, fmt.Errorf("find title by ID %s: %w", id.String(), err)
	}

	return title, nil
}

// filterClause builds the WHERE fragment shared by FindAll and CountAll
func filterClause(filter TitleFilter, args []any) (string, []any) {
	clause := ""
	and := func() string {
		if clause == "" {
			return " WHERE "
		}
		return " AND "
	}

	if filter.CategorySlug != nil && *filter.CategorySlug != "" {
		args = append(args, *filter.CategorySlug)
		clause += and() + fmt.Sprintf(
			`t.category_id = (SELECT id FROM categories WHERE slug = $%d)`, len(args))
	}
	if filter.GenreSlug != nil && *filter.GenreSlug != "" {
		args = append(args, *filter.GenreSlug)
		clause += and() + fmt.Sprintf(
			`EXISTS (SELECT 1 FROM title_genres tg
			         INNER JOIN genres g ON g.id = tg.genre_id
			         WHERE tg.title_id = t.id AND g.slug = $%d)`, len(args))
	}
	if filter.Name != nil && *filter.Name != "" {
		args = append(args, *filter.Name)
		clause += and() + fmt.Sprintf(`t.name ILIKE '%%' || $%d || '%%'`, len(args))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		clause += and() + fmt.Sprintf(`t.year = $%d`, len(args))
	}

	return clause, args
}

func (r *titleRepository) FindAll(ctx context.Context, filter TitleFilter, limit, offset int) ([]*entity.Title, error) {
	clause, args := filterClause(filter, nil)
	query := titleSelect + clause +
		fmt.Sprintf(` ORDER BY t.year DESC, t.name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list titles",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all titles: %w", err)
	}
	defer rows.Close()

	var titles []*entity.Title
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			r.log.Error("Failed to scan title row", zap.Error(err))
			return nil, fmt.Errorf("scan title row: %w", err)
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles rows: %w", err)
	}

	return titles, nil
}

func (r *titleRepository) CountAll(ctx context.Context, filter TitleFilter) (int64, error) {
	clause, args := filterClause(filter, nil)
	query := `SELECT COUNT(*) FROM titles t` + clause

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count titles", zap.Error(err))
		return 0, fmt.Errorf("count titles: %w", err)
	}

	return count, nil
}

func (r *titleRepository) Update(ctx context.Context, title *entity.Title) error {
	query := `
		UPDATE titles
		SET name = $2, year = $3, description = $4, category_id = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		title.ID,
		title.Name,
		title.Year,
		title.Description,
		title.CategoryID,
		title.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update title",
			zap.Error(err),
			zap.String("title_id", title.ID.String()),
		)
		return fmt.Errorf("update title %s: %w", title.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("title %s not found", title.ID.String())
	}

	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Reviews and their comments cascade at the schema level
	query := `DELETE FROM titles WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete title",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return fmt.Errorf("delete title %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("title %s not found", id.String())
	}

	r.log.Info("Title deleted", zap.String("title_id", id.String()))
	return nil
}
