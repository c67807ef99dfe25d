package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/author"
	"library-catalog/pkg/cache"
)

// postgresRepository implements author.Repository on pgxpool with a
// Redis read-through cache for single-author lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	authorListKeyPrefix  = "authors:list"
	cacheTTL             = 15 * time.Minute
	listCacheTTL         = 5 * time.Minute
)

const authorColumns = `id, name, email, bio, nationality, birth_year, created_at, updated_at`

const bookColumns = `id, title, description, isbn, published_year, genre, pages, author_id, created_at, updated_at`

func scanAuthor(row pgx.Row, a *author.Author) error {
	return row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Bio,
		&a.Nationality,
		&a.BirthYear,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

// Create inserts a new author with generated id and timestamps.
func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        INSERT INTO authors (name, email, bio, nationality, birth_year)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + authorColumns

	var created author.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query, a.Name, a.Email, a.Bio, a.Nationality, a.BirthYear), &created)
	if err != nil {
		if isUniqueViolation(err, "email") {
			return nil, author.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	r.invalidateListCache(ctx)

	return &created, nil
}

// GetByID retrieves an author by id with caching.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var a author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	err := scanAuthor(r.pool.QueryRow(ctx, query, id), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &a, cacheTTL)

	return &a, nil
}

// GetAll retrieves every author, newest first, with list caching.
func (r *postgresRepository) GetAll(ctx context.Context) ([]author.Author, error) {
	var cached []author.Author
	if found, err := r.cache.Get(ctx, authorListKeyPrefix, &cached); err == nil && found {
		return cached, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []author.Author
	for rows.Next() {
		var a author.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	r.cache.Set(ctx, authorListKeyPrefix, authors, listCacheTTL)

	return authors, nil
}

// Update writes the full author row.
func (r *postgresRepository) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        UPDATE authors
        SET name = $1, email = $2, bio = $3, nationality = $4, birth_year = $5, updated_at = NOW()
        WHERE id = $6
        RETURNING ` + authorColumns

	var updated author.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query, a.Name, a.Email, a.Bio, a.Nationality, a.BirthYear, a.ID), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		if isUniqueViolation(err, "email") {
			return nil, author.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidateAuthorCache(ctx, a.ID)

	return &updated, nil
}

// Delete removes an author by id. The foreign key from books restricts
// deletion; a violation is translated as a backstop even though the
// service checks the book count first.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return author.ErrAuthorHasBooks
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.invalidateAuthorCache(ctx, id)

	return nil
}

// GetBooks returns the author's books, newest published year first.
// Books without a published year sort last.
func (r *postgresRepository) GetBooks(ctx context.Context, authorID uuid.UUID) ([]author.AuthorBook, error) {
	query := `
        SELECT ` + bookColumns + `
        FROM books
        WHERE author_id = $1
        ORDER BY published_year DESC NULLS LAST, id ASC`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query author books: %w", err)
	}
	defer rows.Close()

	var books []author.AuthorBook
	for rows.Next() {
		var b author.AuthorBook
		err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Description,
			&b.ISBN,
			&b.PublishedYear,
			&b.Genre,
			&b.Pages,
			&b.AuthorID,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// CountBooks counts all books for the author.
func (r *postgresRepository) CountBooks(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) FirstBookByYear(ctx context.Context, authorID uuid.UUID) (*author.YearRef, error) {
	return r.bookByYear(ctx, authorID, "ASC")
}

func (r *postgresRepository) LatestBookByYear(ctx context.Context, authorID uuid.UUID) (*author.YearRef, error) {
	return r.bookByYear(ctx, authorID, "DESC")
}

// bookByYear selects the extreme published year; ties resolve to the
// lowest id.
func (r *postgresRepository) bookByYear(ctx context.Context, authorID uuid.UUID, direction string) (*author.YearRef, error) {
	query := fmt.Sprintf(`
        SELECT title, published_year
        FROM books
        WHERE author_id = $1 AND published_year IS NOT NULL
        ORDER BY published_year %s, id ASC
        LIMIT 1`, direction)

	var ref author.YearRef
	err := r.pool.QueryRow(ctx, query, authorID).Scan(&ref.Title, &ref.Year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select book by year: %w", err)
	}
	return &ref, nil
}

// AveragePages returns the raw mean over non-null page counts, nil when
// no book qualifies. Rounding is the service's concern.
func (r *postgresRepository) AveragePages(ctx context.Context, authorID uuid.UUID) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(ctx, `SELECT AVG(pages) FROM books WHERE author_id = $1 AND pages IS NOT NULL`, authorID).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("failed to average pages: %w", err)
	}
	return avg, nil
}

// DistinctGenres returns the distinct non-null genres.
func (r *postgresRepository) DistinctGenres(ctx context.Context, authorID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT genre FROM books WHERE author_id = $1 AND genre IS NOT NULL`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genres: %w", err)
	}

	return genres, nil
}

func (r *postgresRepository) LongestBook(ctx context.Context, authorID uuid.UUID) (*author.PagesRef, error) {
	return r.bookByPages(ctx, authorID, "DESC")
}

func (r *postgresRepository) ShortestBook(ctx context.Context, authorID uuid.UUID) (*author.PagesRef, error) {
	return r.bookByPages(ctx, authorID, "ASC")
}

func (r *postgresRepository) bookByPages(ctx context.Context, authorID uuid.UUID, direction string) (*author.PagesRef, error) {
	query := fmt.Sprintf(`
        SELECT title, pages
        FROM books
        WHERE author_id = $1 AND pages IS NOT NULL
        ORDER BY pages %s, id ASC
        LIMIT 1`, direction)

	var ref author.PagesRef
	err := r.pool.QueryRow(ctx, query, authorID).Scan(&ref.Title, &ref.Pages)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select book by pages: %w", err)
	}
	return &ref, nil
}

// isUniqueViolation reports whether err is a unique constraint
// violation mentioning the given column.
func isUniqueViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return strings.Contains(pgErr.ConstraintName, column) || strings.Contains(pgErr.Message, column)
	}
	return false
}

func (r *postgresRepository) invalidateAuthorCache(ctx context.Context, id uuid.UUID) {
	r.cache.Delete(ctx, authorCacheKeyPrefix+id.String())
	r.invalidateListCache(ctx)
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	r.cache.DeletePattern(ctx, authorListKeyPrefix+"*")
}
