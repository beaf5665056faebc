package container

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks against the two error kinds the engine raises.
var (
	ErrNotFound  = errors.New("container: not found")
	ErrContainer = errors.New("container: configuration error")
)

// NotFoundError reports that no resolver, definition or substitute target could
// be found for an identifier.
type NotFoundError struct {
	ID     string
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("container: no entry was found for [%s]", e.ID)
	}
	return fmt.Sprintf("container: no entry was found for [%s]: %s", e.ID, e.Reason)
}

// Is lets errors.Is(err, ErrNotFound) match any *NotFoundError.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ContainerError reports an internal configuration problem: an unresolvable
// constructor parameter, a second SetParent, a dependency cycle or a
// definition collision.
type ContainerError struct {
	ID     string
	Reason string
	// Chain holds the identifiers of a detected cycle, bottom of the stack first.
	Chain []string
	Err   error
}

func (e *ContainerError) Error() string {
	var b strings.Builder
	b.WriteString("container: ")
	if len(e.Chain) > 0 {
		b.WriteString("circular dependency detected: ")
		b.WriteString(strings.Join(e.Chain, " -> "))
		return b.String()
	}
	if e.ID != "" {
		fmt.Fprintf(&b, "[%s] ", e.ID)
	}
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is lets errors.Is(err, ErrContainer) match any *ContainerError.
func (e *ContainerError) Is(target error) bool { return target == ErrContainer }

func (e *ContainerError) Unwrap() error { return e.Err }

func notFound(id, format string, args ...any) error {
	return &NotFoundError{ID: id, Reason: fmt.Sprintf(format, args...)}
}

func configError(id string, err error, format string, args ...any) error {
	return &ContainerError{ID: id, Reason: fmt.Sprintf(format, args...), Err: err}
}
