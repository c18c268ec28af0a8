package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrArticleNotFound signals a missing article, by id or slug.
	ErrArticleNotFound = fmt.Errorf("article %w", ErrNotFound)
	// ErrInvalidArticle signals a record that violates the read-model invariants.
	ErrInvalidArticle = errors.New("invalid article")
	// ErrTextSearchNotSupported signals that the backend has no native relevance signal.
	ErrTextSearchNotSupported = errors.New("text search not supported by backend")
)
