package organizer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nikbrunner/collector/internal/model"
	"github.com/nikbrunner/collector/internal/storage"
	"github.com/nikbrunner/collector/internal/tree"
)

// DefaultFolderDescription is stored on the folder created by EnsureDefaultFolder.
const DefaultFolderDescription = "default folder"

// Params holds parameters for creating an Organizer.
type Params struct {
	Backend           storage.Backend
	Out               io.Writer    // tree and listing output
	Logger            *slog.Logger // nil = discard
	DefaultFolderName string       // "" = model.DefaultFolderName
	Indent            int          // 0 = tree.DefaultIndent
	Styles            *tree.Styles // nil = plain text
}

// Organizer runs the bookmark commands against one storage backend.
type Organizer struct {
	backend     storage.Backend
	out         io.Writer
	logger      *slog.Logger
	defaultName string
	indent      int
	styles      *tree.Styles
}

// New creates an Organizer.
func New(params Params) *Organizer {
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	name := params.DefaultFolderName
	if name == "" {
		name = model.DefaultFolderName
	}
	out := params.Out
	if out == nil {
		out = io.Discard
	}
	return &Organizer{
		backend:     params.Backend,
		out:         out,
		logger:      logger,
		defaultName: name,
		indent:      params.Indent,
		styles:      params.Styles,
	}
}

// DefaultFolderName returns the name of the top-level default folder.
func (o *Organizer) DefaultFolderName() string {
	return o.defaultName
}

// InitStorage prepares a fresh store. Opening the backend has already
// applied the schema; this adds the default folder when it is missing.
func (o *Organizer) InitStorage() (*model.Folder, error) {
	folder, _, err := o.EnsureDefaultFolder()
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return folder, nil
}

// EnsureDefaultFolder returns the top-level default folder, creating it if
// absent. created reports whether this call inserted it.
func (o *Organizer) EnsureDefaultFolder() (folder *model.Folder, created bool, err error) {
	folder, err = o.backend.FindFolderByName(o.defaultName, model.RootID)
	if err == nil {
		o.logger.Debug("default folder exists", "id", folder.ID)
		return folder, false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, false, err
	}

	id, err := o.backend.InsertFolder(model.NewFolderParams{
		Name:        o.defaultName,
		Description: DefaultFolderDescription,
		ParentID:    model.RootID,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create default folder: %w", err)
	}

	o.logger.Info("default folder created", "id", id, "name", o.defaultName)

	return &model.Folder{
		ID:          id,
		Name:        o.defaultName,
		Description: DefaultFolderDescription,
		ParentID:    model.RootID,
	}, true, nil
}

// CreateFolder validates req and inserts the folder. A ParentID of zero or
// less places the folder at the top level.
func (o *Organizer) CreateFolder(req CreateFolderRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}

	parentID := req.ParentID
	if parentID <= 0 {
		parentID = model.RootID
	}

	id, err := o.backend.InsertFolder(model.NewFolderParams{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    parentID,
	})
	if err != nil {
		return 0, err
	}

	o.logger.Info("folder created",
		"id", id,
		"name", req.Name,
		"parent_id", parentID,
	)

	return id, nil
}

// CreateBookmark validates req and inserts the bookmark. A FolderID of zero
// or less files it in the default folder.
func (o *Organizer) CreateBookmark(req CreateBookmarkRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}

	folderID := req.FolderID
	if folderID <= 0 {
		var err error
		if folderID, err = o.defaultFolderID(); err != nil {
			return 0, err
		}
	}

	id, err := o.backend.InsertBookmark(model.NewBookmarkParams{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		FolderID:    folderID,
	})
	if err != nil {
		return 0, err
	}

	o.logger.Info("bookmark created",
		"id", id,
		"title", req.Title,
		"folder_id", folderID,
	)

	return id, nil
}

// defaultFolderID looks up the default folder without creating it.
func (o *Organizer) defaultFolderID() (int64, error) {
	folder, err := o.backend.FindFolderByName(o.defaultName, model.RootID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, fmt.Errorf("default folder %q missing, run init-storage first: %w", o.defaultName, err)
		}
		return 0, err
	}
	return folder.ID, nil
}

// build materializes the whole folder tree.
func (o *Organizer) build() (*tree.Node, *tree.Forest, error) {
	root, forest, err := tree.Build(o.backend, model.RootID)
	if err != nil {
		return nil, nil, err
	}
	o.logger.Debug("folder tree built",
		"folder_count", root.Len(),
		"depth", root.Height(),
	)
	return root, forest, nil
}
