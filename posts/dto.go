package posts

// Data Transfer Objects for the post endpoints. Create and update payloads
// use pointer fields so an absent field can be told apart from an empty one;
// update applies only the fields actually present (the whitelist is title,
// content, and author — nothing else is mutable).

import (
	"time"

	"github.com/user/minblog-go/apperror"
)

// AuthorPayload is the structured author field of a post payload.
type AuthorPayload struct {
	FirstName *string `json:"firstName,omitempty" example:"John"`
	LastName  *string `json:"lastName,omitempty" example:"Doe"`
}

// CreatePostRequest represents the payload for creating a post.
type CreatePostRequest struct {
	Title   *string        `json:"title" example:"My first post"`
	Content *string        `json:"content" example:"Hello, world."`
	Author  *AuthorPayload `json:"author,omitempty"`
}

// NewPost carries a validated create payload through to the store.
type NewPost struct {
	Title   string
	Content string
	Author  *AuthorPayload
}

// Validate checks the create payload: title and content are required, author
// is optional. The error is a 400 BadRequestError naming the missing field.
func (r *CreatePostRequest) Validate() (*NewPost, error) {
	if r.Title == nil || *r.Title == "" {
		return nil, apperror.NewBadRequestError("title is required", nil)
	}
	if r.Content == nil || *r.Content == "" {
		return nil, apperror.NewBadRequestError("content is required", nil)
	}
	return &NewPost{
		Title:   *r.Title,
		Content: *r.Content,
		Author:  r.Author,
	}, nil
}

// UpdatePostRequest represents the payload for updating a post. The optional
// ID, when present, must match the path identifier. All other fields are
// applied only when present; absent fields leave the stored values untouched.
type UpdatePostRequest struct {
	ID      *string        `json:"id,omitempty"`
	Title   *string        `json:"title,omitempty" example:"Revised title"`
	Content *string        `json:"content,omitempty"`
	Author  *AuthorPayload `json:"author,omitempty"`
}

// PostChanges is the whitelisted set of fields an update may touch.
type PostChanges struct {
	Title   *string
	Content *string
	Author  *AuthorPayload
}

// PostResponse is the public representation of a post: the author appears as
// a single derived full-name string, and created serializes as an RFC 3339
// timestamp.
type PostResponse struct {
	ID      string    `json:"id" example:"7d9f1e92-0d3c-4b3f-9a57-2f4f2c3f8b11"`
	Author  string    `json:"author" example:"John Doe"`
	Content string    `json:"content" example:"Hello, world."`
	Title   string    `json:"title" example:"My first post"`
	Created time.Time `json:"created" example:"2023-01-15T10:30:00Z"`
}

// toResponse maps a stored post to its public representation.
func toResponse(p *Post) PostResponse {
	return PostResponse{
		ID:      p.ID,
		Author:  p.AuthorName(),
		Content: p.Content,
		Title:   p.Title,
		Created: p.Created,
	}
}
