// Package posts is responsible for blog posts: the model, the CRUD endpoints,
// and the store operations backing them. Every route in this package sits
// behind the Basic authentication gate.
package posts

import (
	"strings"
	"time"
)

// Post represents a stored blog post.
type Post struct {
	// ID is an opaque unique identifier, generated by the store on creation
	// and immutable thereafter.
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	// Author name parts are optional; either or both may be absent.
	AuthorFirstName *string `json:"authorFirstName,omitempty"`
	AuthorLastName  *string `json:"authorLastName,omitempty"`
	// Created defaults to creation time and is immutable thereafter.
	Created time.Time `json:"created"`
}

// AuthorName derives the display name: the trimmed concatenation of the
// author's first and last names separated by a single space. Absent parts
// contribute nothing, so a lone first name renders without trailing space.
func (p *Post) AuthorName() string {
	var first, last string
	if p.AuthorFirstName != nil {
		first = *p.AuthorFirstName
	}
	if p.AuthorLastName != nil {
		last = *p.AuthorLastName
	}
	return strings.TrimSpace(first + " " + last)
}
