package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an update or delete targets a row that does
// not exist.
var ErrNotFound = errors.New("not found")

// ValidationError carries the full list of human-readable messages collected
// during a create/update. Rules do not short-circuit each other, so a single
// bad candidate can produce several messages at once.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) add(msg string) {
	e.Messages = append(e.Messages, msg)
}

// errOrNil returns the error when at least one message was collected.
func (e *ValidationError) errOrNil() error {
	if len(e.Messages) == 0 {
		return nil
	}
	return e
}

// invalidScopesMessage renders the validation message for unresolved scope
// references. Singular and plural use different templates.
func invalidScopesMessage(invalid []string) string {
	if len(invalid) == 1 {
		return fmt.Sprintf("The scope %s is invalid", invalid[0])
	}
	return fmt.Sprintf("Scopes %s are invalid", strings.Join(invalid, ", "))
}

const (
	msgClientIDHasSpaces  = "The client ID must not contain spaces"
	msgNameHasSpaces      = "The name must not contain spaces"
	msgClientIDExists     = "The client with this id exists already"
	msgClientNameExists   = "The client with this name exists already"
	msgResourceNameExists = "The resource with this name exists already"
	msgScopeNameExists    = "The scope with this name exists already"
	msgUserNameExists     = "The user with this name exists already"
)

func containsSpace(s string) bool {
	return strings.Contains(s, " ")
}
