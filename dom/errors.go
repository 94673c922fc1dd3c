package dom

import "fmt"

// TreeError represents a structural mutation error with a name and message.
type TreeError struct {
	Name    string
	Message string
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Common tree error constructors

// ErrHierarchy creates a HierarchyError for mutations that would produce an
// impossible tree (cycles, children under leaf nodes, a second root).
func ErrHierarchy(message string) *TreeError {
	return &TreeError{Name: "HierarchyError", Message: message}
}

// ErrDetached creates a DetachedError for operations that require the node
// to have a parent.
func ErrDetached(message string) *TreeError {
	return &TreeError{Name: "DetachedError", Message: message}
}

// ErrIndex creates an IndexError for out-of-range child positions.
func ErrIndex(message string) *TreeError {
	return &TreeError{Name: "IndexError", Message: message}
}

// ErrKind creates a KindError for operations applied to the wrong node kind.
func ErrKind(message string) *TreeError {
	return &TreeError{Name: "KindError", Message: message}
}
