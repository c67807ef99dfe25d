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

	"library-catalog/internal/domains/book"
	"library-catalog/pkg/cache"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) book.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	bookCacheKeyPrefix = "book:"
	bookListKeyPrefix  = "books:list"
	cacheTTL           = 10 * time.Minute
	listCacheTTL       = 5 * time.Minute
)

const bookColumns = `id, title, description, isbn, published_year, genre, pages, author_id, created_at, updated_at`

func scanBook(row pgx.Row, b *book.Book) error {
	return row.Scan(
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
}

// buildWhereClause constructs the conjunctive filter from the query
// descriptor. Filters are additive: every supplied filter narrows the
// result. Returns the clause and its positional arguments.
func buildWhereClause(q book.SearchQuery) (string, []interface{}) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if q.Search != "" {
		conditions = append(conditions, fmt.Sprintf("b.title ILIKE $%d", argIndex))
		args = append(args, "%"+book.EscapeLike(q.Search)+"%")
		argIndex++
	}

	if q.Genre != "" {
		conditions = append(conditions, fmt.Sprintf("b.genre = $%d", argIndex))
		args = append(args, q.Genre)
		argIndex++
	}

	if q.AuthorName != "" {
		conditions = append(conditions, fmt.Sprintf("a.name ILIKE $%d", argIndex))
		args = append(args, "%"+book.EscapeLike(q.AuthorName)+"%")
		argIndex++
	}

	return strings.Join(conditions, " AND "), args
}

// Search executes the descriptor: count first for pagination, then the
// page itself. The sort column comes from the descriptor's whitelist,
// never from raw input; ties resolve by id for a stable order.
func (r *postgresRepository) Search(ctx context.Context, q book.SearchQuery) ([]book.BookWithAuthor, int, error) {
	whereClause, args := buildWhereClause(q)

	countQuery := fmt.Sprintf(`
        SELECT COUNT(*)
        FROM books b
        JOIN authors a ON b.author_id = a.id
        WHERE %s`, whereClause)

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	direction := "ASC"
	if q.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
        SELECT b.id, b.title, b.description, b.isbn, b.published_year, b.genre, b.pages,
               b.author_id, b.created_at, b.updated_at,
               a.id, a.name, a.email
        FROM books b
        JOIN authors a ON b.author_id = a.id
        WHERE %s
        ORDER BY %s %s, b.id ASC
        LIMIT $%d OFFSET $%d`,
		whereClause, q.SortColumn, direction, len(args)+1, len(args)+2)

	args = append(args, q.Limit, q.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	results := make([]book.BookWithAuthor, 0, q.Limit)
	for rows.Next() {
		var row book.BookWithAuthor
		err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.Description,
			&row.ISBN,
			&row.PublishedYear,
			&row.Genre,
			&row.Pages,
			&row.AuthorID,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.Author.ID,
			&row.Author.Name,
			&row.Author.Email,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating books: %w", err)
	}

	return results, total, nil
}

// Create inserts a new book. A foreign key violation on author_id means
// the referenced author does not exist.
func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        INSERT INTO books (title, description, isbn, published_year, genre, pages, author_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + bookColumns

	var created book.Book
	err := scanBook(r.pool.QueryRow(ctx, query,
		b.Title, b.Description, b.ISBN, b.PublishedYear, b.Genre, b.Pages, b.AuthorID,
	), &created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, book.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	r.invalidateListCache(ctx)

	return &created, nil
}

// GetByID retrieves a book by id with caching.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var b book.Book
	if found, err := r.cache.Get(ctx, cacheKey, &b); err == nil && found {
		return &b, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	err := scanBook(r.pool.QueryRow(ctx, query, id), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &b, cacheTTL)

	return &b, nil
}

// GetAll retrieves every book, newest first, with list caching.
func (r *postgresRepository) GetAll(ctx context.Context) ([]book.Book, error) {
	var cached []book.Book
	if found, err := r.cache.Get(ctx, bookListKeyPrefix, &cached); err == nil && found {
		return cached, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		var b book.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	r.cache.Set(ctx, bookListKeyPrefix, books, listCacheTTL)

	return books, nil
}

// Update writes the full book row.
func (r *postgresRepository) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        UPDATE books
        SET title = $1, description = $2, isbn = $3, published_year = $4, genre = $5, pages = $6, updated_at = NOW()
        WHERE id = $7
        RETURNING ` + bookColumns

	var updated book.Book
	err := scanBook(r.pool.QueryRow(ctx, query,
		b.Title, b.Description, b.ISBN, b.PublishedYear, b.Genre, b.Pages, b.ID,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	r.invalidateBookCache(ctx, b.ID)

	return &updated, nil
}

// Delete removes a book by id.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.invalidateBookCache(ctx, id)

	return nil
}

func (r *postgresRepository) invalidateBookCache(ctx context.Context, id uuid.UUID) {
	r.cache.Delete(ctx, bookCacheKeyPrefix+id.String())
	r.invalidateListCache(ctx)
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	r.cache.DeletePattern(ctx, bookListKeyPrefix+"*")
}
