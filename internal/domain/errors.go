package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every error returned by the workflow and risk engines wraps
// exactly one of these, so callers can branch with errors.Is.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrForbidden              = errors.New("forbidden")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrComputation            = errors.New("risk computation failed")
	ErrTimeout                = errors.New("store call timed out")
	ErrCanceled               = errors.New("operation canceled by caller")
	ErrValidation             = errors.New("validation error")
)

// Not found errors
var (
	ErrTaskRecordNotFound = fmt.Errorf("task record %w", ErrNotFound)
	ErrAssetNotFound      = fmt.Errorf("asset %w", ErrNotFound)
	ErrScopeNotFound      = fmt.Errorf("scope %w", ErrNotFound)
	ErrControlNotFound    = fmt.Errorf("control %w", ErrNotFound)
	ErrFamilyNotFound     = fmt.Errorf("control family %w", ErrNotFound)
	ErrActionNotFound     = fmt.Errorf("catalog action %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
)

// Permission errors
var (
	ErrMissingCapability = fmt.Errorf("%w: missing capability", ErrForbidden)
	ErrNotAssignee       = fmt.Errorf("%w: not task assignee", ErrForbidden)
	ErrUserInactive      = fmt.Errorf("%w: user is inactive", ErrForbidden)
)

// Validation errors
var (
	ErrMissingActor    = fmt.Errorf("%w: acting user id is required", ErrValidation)
	ErrMissingAssignee = fmt.Errorf("%w: assignee id is required", ErrValidation)
	ErrEmptyFeedback   = fmt.Errorf("%w: feedback is required", ErrValidation)
	ErrMissingKey      = fmt.Errorf("%w: action id and asset id are required", ErrValidation)
	ErrInvalidStatus   = fmt.Errorf("%w: invalid task status", ErrValidation)
)
