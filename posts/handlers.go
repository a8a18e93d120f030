package posts

// HTTP handlers for the post endpoints. Authentication is enforced by the
// auth.BasicAuth middleware applied where these routes are mounted; by the
// time a handler runs, the request carries a verified user.

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/minblog-go/apperror"
)

// PostHandlers handles HTTP requests for posts.
type PostHandlers struct {
	service Service
}

// NewPostHandlers creates a new PostHandlers.
func NewPostHandlers(service Service) *PostHandlers {
	return &PostHandlers{service: service}
}

// RegisterRoutes registers the post API routes on the given router. The
// router is expected to already carry the authentication middleware.
func (h *PostHandlers) RegisterRoutes(router chi.Router) {
	router.Get("/", h.listPosts)
	router.Post("/", h.createPost)
	router.Get("/{id}", h.getPost)
	router.Put("/{id}", h.updatePost)
	router.Delete("/{id}", h.deletePost)
}

// listPosts godoc
// @Summary List all posts
// @Description Returns every post, newest first. No pagination.
// @Tags posts
// @Produce json
// @Security BasicAuth
// @Success 200 {array} posts.PostResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /posts [get]
func (h *PostHandlers) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}
	apperror.WriteJSON(w, http.StatusOK, posts)
}

// getPost godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Security BasicAuth
// @Param id path string true "Post identifier"
// @Success 200 {object} posts.PostResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Post does not exist"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandlers) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}
	apperror.WriteJSON(w, http.StatusOK, post)
}

// createPost godoc
// @Summary Create a post
// @Description Persists a new post. Title and content are required; author is optional.
// @Tags posts
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param postBody body posts.CreatePostRequest true "Post to create"
// @Success 201 {object} posts.PostResponse
// @Failure 400 {object} apperror.ErrorResponse "Missing required field"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /posts [post]
func (h *PostHandlers) createPost(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperror.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}

	np, err := req.Validate()
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}

	post, err := h.service.Create(r.Context(), np)
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}
	apperror.WriteJSON(w, http.StatusCreated, post)
}

// updatePost godoc
// @Summary Update a post
// @Description Partial update over the whitelist (title, content, author). A body-supplied id must match the path id.
// @Tags posts
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path string true "Post identifier"
// @Param postBody body posts.UpdatePostRequest true "Fields to update"
// @Success 200 {object} posts.PostResponse
// @Failure 400 {object} apperror.ErrorResponse "Body id does not match path id"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Post does not exist"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandlers) updatePost(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperror.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}

	// A body-supplied id that disagrees with the path halts the request
	// before any store call; no mutation occurs.
	id := chi.URLParam(r, "id")
	if req.ID != nil && *req.ID != id {
		apperror.WriteError(w, r, apperror.NewBadRequestError("id in body does not match id in path", nil))
		return
	}

	post, err := h.service.Update(r.Context(), id, &PostChanges{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	})
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}
	apperror.WriteJSON(w, http.StatusOK, post)
}

// deletePost godoc
// @Summary Delete a post
// @Description Deletes by identifier. Succeeds with an empty 204 whether or not a matching post existed.
// @Tags posts
// @Security BasicAuth
// @Param id path string true "Post identifier"
// @Success 204 "Deleted"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandlers) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		apperror.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
