package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/nikbrunner/collector/internal/model"
)

const currentSchemaVersion = 2

// SQLiteStorage implements Backend using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage opens the database at path and brings its schema up to date.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Pragmas are per connection; one connection keeps foreign keys on for
	// every statement.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the migration level recorded in the database.
func (s *SQLiteStorage) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < currentSchemaVersion {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the folder and bookmark tables.
// Top-level folders store NULL in parent_id so the self reference holds;
// the unique index folds NULL back to the root sentinel so two top-level
// folders cannot share a name.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS folders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			parent_id INTEGER,
			FOREIGN KEY (parent_id) REFERENCES folders(id)
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_folders_name_parent ON folders(name, IFNULL(parent_id, 0));
		CREATE INDEX IF NOT EXISTS idx_folders_parent_id ON folders(parent_id);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			folder_id INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			UNIQUE (title, folder_id),
			FOREIGN KEY (folder_id) REFERENCES folders(id)
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_folder_id ON bookmarks(folder_id);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 indexes bookmark urls for duplicate detection on import.
func (s *SQLiteStorage) migrateV2() error {
	migration := `
		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// InsertFolder inserts a folder and returns its assigned id.
func (s *SQLiteStorage) InsertFolder(params model.NewFolderParams) (int64, error) {
	folder := model.NewFolder(params)

	res, err := s.db.Exec(`
		INSERT INTO folders (name, description, parent_id)
		VALUES (?, ?, ?)
	`, folder.Name, folder.Description, nullableID(folder.ParentID))
	if err != nil {
		switch {
		case isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE constraint failed"):
			return 0, &model.ConflictError{Kind: "folder", Name: folder.Name, FolderID: folder.ParentID}
		case isConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY constraint failed"):
			return 0, fmt.Errorf("parent folder %d: %w", folder.ParentID, model.ErrForeignKey)
		}
		return 0, fmt.Errorf("insert folder: %w", err)
	}

	return res.LastInsertId()
}

// InsertBookmark inserts a bookmark and returns its assigned id.
func (s *SQLiteStorage) InsertBookmark(params model.NewBookmarkParams) (int64, error) {
	bookmark := model.NewBookmark(params)

	res, err := s.db.Exec(`
		INSERT INTO bookmarks (title, description, url, folder_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, bookmark.Title, bookmark.Description, bookmark.URL, bookmark.FolderID,
		bookmark.CreatedAt.Format(time.RFC3339))
	if err != nil {
		switch {
		case isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE constraint failed"):
			return 0, &model.ConflictError{Kind: "bookmark", Name: bookmark.Title, FolderID: bookmark.FolderID}
		case isConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY constraint failed"):
			return 0, fmt.Errorf("folder %d: %w", bookmark.FolderID, model.ErrForeignKey)
		}
		return 0, fmt.Errorf("insert bookmark: %w", err)
	}

	return res.LastInsertId()
}

// FindFolderByID returns the folder with the given id.
func (s *SQLiteStorage) FindFolderByID(id int64) (*model.Folder, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, parent_id
		FROM folders
		WHERE id = ?
	`, id)

	folder, err := scanFolder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("folder %d: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return &folder, nil
}

// FindFolderByName returns the child of parentID named name.
func (s *SQLiteStorage) FindFolderByName(name string, parentID int64) (*model.Folder, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, parent_id
		FROM folders
		WHERE name = ? AND IFNULL(parent_id, 0) = ?
	`, name, parentID)

	folder, err := scanFolder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("folder %q in %d: %w", name, parentID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return &folder, nil
}

// FindFoldersByParent lists the immediate children of parentID.
func (s *SQLiteStorage) FindFoldersByParent(parentID int64) ([]model.Folder, error) {
	var rows *sql.Rows
	var err error
	if parentID == model.RootID {
		rows, err = s.db.Query(`
			SELECT id, name, description, parent_id
			FROM folders
			WHERE parent_id IS NULL
			ORDER BY id
		`)
	} else {
		rows, err = s.db.Query(`
			SELECT id, name, description, parent_id
			FROM folders
			WHERE parent_id = ?
			ORDER BY id
		`, parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("list folder children: %w", err)
	}
	return collectFolders(rows)
}

// ListFolders returns every folder in creation order.
func (s *SQLiteStorage) ListFolders() ([]model.Folder, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, parent_id
		FROM folders
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return collectFolders(rows)
}

// FindBookmarksByFolder lists the bookmarks stored directly in folderID.
func (s *SQLiteStorage) FindBookmarksByFolder(folderID int64) ([]model.Bookmark, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, url, folder_id, created_at
		FROM bookmarks
		WHERE folder_id = ?
		ORDER BY id
	`, folderID)
	if err != nil {
		return nil, fmt.Errorf("list folder bookmarks: %w", err)
	}
	return collectBookmarks(rows)
}

// ListBookmarks returns every bookmark in creation order.
func (s *SQLiteStorage) ListBookmarks() ([]model.Bookmark, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, url, folder_id, created_at
		FROM bookmarks
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return collectBookmarks(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (model.Folder, error) {
	var f model.Folder
	var parentID sql.NullInt64

	if err := row.Scan(&f.ID, &f.Name, &f.Description, &parentID); err != nil {
		return model.Folder{}, err
	}
	if parentID.Valid {
		f.ParentID = parentID.Int64
	}
	return f, nil
}

func collectFolders(rows *sql.Rows) ([]model.Folder, error) {
	defer rows.Close()

	folders := []model.Folder{}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return folders, nil
}

func collectBookmarks(rows *sql.Rows) ([]model.Bookmark, error) {
	defer rows.Close()

	bookmarks := []model.Bookmark{}
	for rows.Next() {
		var b model.Bookmark
		var createdAtStr string

		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.URL, &b.FolderID, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)

		bookmarks = append(bookmarks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}
	return bookmarks, nil
}

// nullableID maps the root sentinel to NULL.
func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != model.RootID}
}

// isConstraint reports whether err is the given extended constraint failure.
// The message check covers drivers built without extended result codes.
func isConstraint(err error, code int, message string) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == code {
		return true
	}
	return strings.Contains(err.Error(), message)
}

// DefaultSQLitePath returns the default SQLite database path: ~/.config/collector/bookmarks.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "collector", "bookmarks.db"), nil
}
