package model

import "time"

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	FolderID    int64     `json:"folderId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title       string
	Description string
	URL         string
	FolderID    int64
	CreatedAt   time.Time // zero = now
}

// NewBookmark creates a Bookmark without an id. Storage assigns the id on insert.
func NewBookmark(params NewBookmarkParams) Bookmark {
	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return Bookmark{
		Title:       params.Title,
		Description: params.Description,
		URL:         params.URL,
		FolderID:    params.FolderID,
		CreatedAt:   createdAt,
	}
}
