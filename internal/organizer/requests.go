package organizer

import (
	"errors"
	"log/slog"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nikbrunner/collector/internal/importer"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 1024
	maxURLLength         = 2048
)

// CreateFolderRequest is the input of CreateFolder.
type CreateFolderRequest struct {
	Name        string
	Description string
	ParentID    int64 // <= 0 = top level
}

// Validate checks the request fields.
func (r CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&r.Description, validation.Length(0, maxDescriptionLength)),
	)
}

// CreateBookmarkRequest is the input of CreateBookmark.
type CreateBookmarkRequest struct {
	Title       string
	Description string
	URL         string
	FolderID    int64 // <= 0 = default folder
}

// Validate checks the request fields.
func (r CreateBookmarkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&r.Description, validation.Length(0, maxDescriptionLength)),
		validation.Field(&r.URL,
			validation.Required,
			validation.Length(1, maxURLLength),
			validation.By(absoluteURL),
		),
	)
}

// absoluteURL accepts strings with a scheme and a host.
func absoluteURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("must be an absolute URL")
	}
	return nil
}

// importRules holds imported records to the rules of CreateFolder and
// CreateBookmark.
type importRules struct {
	logger *slog.Logger
}

func (r importRules) ValidateFolder(f importer.Folder) error {
	err := CreateFolderRequest{Name: f.Name, Description: f.Description}.Validate()
	if err != nil {
		r.logger.Warn("import folder rejected", "name", f.Name, "error", err)
	}
	return err
}

func (r importRules) ValidateBookmark(b importer.Bookmark) error {
	err := CreateBookmarkRequest{Title: b.Title, Description: b.Description, URL: b.URL}.Validate()
	if err != nil {
		r.logger.Warn("import bookmark rejected", "title", b.Title, "url", b.URL, "error", err)
	}
	return err
}
