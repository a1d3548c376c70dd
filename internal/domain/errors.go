package domain

import "errors"

var (
	// ErrMissingOrganization is returned when a team report has no organization to target.
	ErrMissingOrganization = errors.New("missing mandatory information of which GitHub organization to target")
	// ErrDispatch wraps failures of the notification sender.
	ErrDispatch = errors.New("failed to dispatch notification")
	// ErrUnknownProfile is returned when a named profile is not present in the configuration.
	ErrUnknownProfile = errors.New("unknown profile")
)
