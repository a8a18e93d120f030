package posts

// Service layer for blog posts: the store accessor operations (create,
// find-all, find-by-id, update-by-id, delete-by-id) over the pgx pool.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/minblog-go/apperror"
	"github.com/user/minblog-go/db"
)

// Service defines the post operations. Handlers depend on this interface
// rather than the concrete pgx-backed implementation.
type Service interface {
	// Create persists a new post with a freshly generated identifier.
	Create(ctx context.Context, np *NewPost) (*PostResponse, error)
	// List returns all posts, newest first. The result set is unbounded.
	List(ctx context.Context) ([]PostResponse, error)
	// Get finds a post by identifier; a missing post is an explicit
	// NotFoundError, never a nil dereference.
	Get(ctx context.Context, id string) (*PostResponse, error)
	// Update applies the whitelisted changes to a post and returns the
	// updated representation.
	Update(ctx context.Context, id string, changes *PostChanges) (*PostResponse, error)
	// Delete removes a post by identifier. Deleting an absent post is not an
	// error (idempotent delete).
	Delete(ctx context.Context, id string) error
}

// postService is the pgx-backed implementation of Service.
type postService struct {
	db *pgxpool.Pool
}

// NewPostService creates a new post Service on top of the given pool.
func NewPostService(pool *pgxpool.Pool) Service {
	return &postService{db: pool}
}

const postColumns = `id, title, content, author_first_name, author_last_name, created`

// scanPost scans one posts row in postColumns order.
func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorFirstName, &p.AuthorLastName, &p.Created)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persists a new post. The identifier is generated here, in the store
// accessor, so callers never supply one.
func (s *postService) Create(ctx context.Context, np *NewPost) (*PostResponse, error) {
	post := &Post{
		ID:      uuid.NewString(),
		Title:   np.Title,
		Content: np.Content,
	}
	if np.Author != nil {
		post.AuthorFirstName = np.Author.FirstName
		post.AuthorLastName = np.Author.LastName
	}

	query := `INSERT INTO posts (id, title, content, author_first_name, author_last_name)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING created`
	err := s.db.QueryRow(ctx, query,
		post.ID, post.Title, post.Content, post.AuthorFirstName, post.AuthorLastName,
	).Scan(&post.Created)
	if err != nil {
		return nil, db.StoreError("failed to create post", err)
	}

	resp := toResponse(post)
	return &resp, nil
}

// List returns the public representations of all posts, newest first.
func (s *postService) List(ctx context.Context) ([]PostResponse, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts ORDER BY created DESC`, postColumns)
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, db.StoreError("failed to list posts", err)
	}
	defer rows.Close()

	// Non-nil so an empty table serializes as [] rather than null.
	responses := []PostResponse{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, db.StoreError("failed to scan post", err)
		}
		responses = append(responses, toResponse(post))
	}
	if err := rows.Err(); err != nil {
		return nil, db.StoreError("failed to list posts", err)
	}
	return responses, nil
}

// Get finds a post by identifier.
func (s *postService) Get(ctx context.Context, id string) (*PostResponse, error) {
	if !isPostID(id) {
		return nil, apperror.NewNotFoundError("post not found", nil)
	}

	query := fmt.Sprintf(`SELECT %s FROM posts WHERE id = $1`, postColumns)
	post, err := scanPost(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, db.StoreError("failed to get post", err)
	}

	resp := toResponse(post)
	return &resp, nil
}

// Update applies the whitelisted changes and returns the updated post. Title
// and content replace the stored values when present; a present author
// payload replaces both name parts wholesale (so omitting lastName inside a
// supplied author clears it). Absent fields are left untouched.
func (s *postService) Update(ctx context.Context, id string, changes *PostChanges) (*PostResponse, error) {
	if !isPostID(id) {
		return nil, apperror.NewNotFoundError("post not found", nil)
	}

	// Build the SET clause from only the supplied fields. $1 is the id.
	set := make([]string, 0, 4)
	args := []any{id}
	appendSet := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if changes.Title != nil {
		appendSet("title", *changes.Title)
	}
	if changes.Content != nil {
		appendSet("content", *changes.Content)
	}
	if changes.Author != nil {
		appendSet("author_first_name", changes.Author.FirstName)
		appendSet("author_last_name", changes.Author.LastName)
	}

	// Nothing to change: the update degenerates to a read.
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), postColumns)
	post, err := scanPost(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, db.StoreError("failed to update post", err)
	}

	resp := toResponse(post)
	return &resp, nil
}

// Delete removes a post by identifier. A delete that matched nothing still
// succeeds; the operation is idempotent from the client's perspective.
func (s *postService) Delete(ctx context.Context, id string) error {
	if !isPostID(id) {
		return nil
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return db.StoreError("failed to delete post", err)
	}
	return nil
}

// isPostID reports whether id is syntactically a post identifier. Malformed
// identifiers cannot reference any stored post, so callers treat them as
// not-found (or as a no-op delete) instead of letting the database reject the
// UUID cast with a spurious 500.
func isPostID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
