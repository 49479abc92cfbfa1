package model

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every storage backend. Match them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrUniqueness      = errors.New("uniqueness violation")
	ErrForeignKey      = errors.New("foreign key violation")
	ErrDataConsistency = errors.New("data consistency error")
	ErrCycle           = errors.New("folder cycle")
	ErrValidation      = errors.New("validation failed")
)

// ConflictError describes a rejected insert whose (name, folder) pair is
// already taken.
type ConflictError struct {
	Kind     string // "folder" or "bookmark"
	Name     string
	FolderID int64 // parent of the folder, or owner of the bookmark
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists in folder %d: %s", e.Kind, e.Name, e.FolderID, ErrUniqueness)
}

// Is allows errors.Is() to match against ErrUniqueness.
func (e *ConflictError) Is(target error) bool {
	return target == ErrUniqueness
}
