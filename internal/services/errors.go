package services

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMemberNotInWorkspace signals a relationship violation rather than a
	// missing entity: both the user and the workspace exist, but no
	// membership binds them.
	ErrMemberNotInWorkspace = errors.New("member not found in the workspace")

	ErrAlreadyMember = errors.New("user is already a member of the workspace")
)
