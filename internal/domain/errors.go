package domain

import "errors"

var (
	// ErrAttachRefused indicates the rendering surface denied attachment.
	ErrAttachRefused = errors.New("rendering surface refused attachment")

	// ErrSurfaceDetached indicates the surface handle is no longer attached.
	ErrSurfaceDetached = errors.New("surface already detached")

	// ErrTargetNotFound indicates an ID outside the monitored allow-list.
	ErrTargetNotFound = errors.New("target not monitored")

	// ErrMalformedEvent indicates an event line that could not be decoded.
	ErrMalformedEvent = errors.New("malformed event")
)
