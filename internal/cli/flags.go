package cli

import (
	"time"

	"github.com/nikbrunner/collector/internal/culler"
	"github.com/nikbrunner/collector/internal/storage"
)

// Flags holds all command-line flag values
type Flags struct {
	// Global flags
	CfgFile  string
	DBPath   string
	Driver   string
	LogLevel string

	// Folder and bookmark flags
	Name           string
	Title          string
	Description    string
	URL            string
	ParentFolderID int64
	FolderID       int64

	// Output flags
	Style string
	Copy  bool

	// Link check flags
	Concurrency    int
	Timeout        time.Duration
	ExcludeDomains []string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Driver:         storage.DriverSQLite,
		LogLevel:       "warn",
		Style:          "text",
		ParentFolderID: -1,
		FolderID:       -1,
		Concurrency:    culler.DefaultConcurrency,
		Timeout:        culler.DefaultTimeout,
	}
}
