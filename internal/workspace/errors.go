package workspace

import "github.com/pkg/errors"

var (
	ErrItemNotFound      = errors.New("workspace: item not found")
	ErrPanelNotFound     = errors.New("workspace: panel not found")
	ErrTabNotFound       = errors.New("workspace: tab not found")
	ErrNodeNotFound      = errors.New("workspace: node not found")
	ErrRecordingNotFound = errors.New("workspace: recording not found")
	ErrNotRecording      = errors.New("workspace: not recording")
	ErrAlreadyRecording  = errors.New("workspace: already recording")
	ErrBusy              = errors.New("workspace: operation already in progress")
	ErrEmptySelection    = errors.New("workspace: nothing to study")
	ErrUnknownKind       = errors.New("workspace: unknown tab kind")
	ErrUnknownMethod     = errors.New("workspace: unknown study method")
	ErrBadConnection     = errors.New("workspace: invalid connection")
	ErrEmptyName         = errors.New("workspace: name must not be empty")
	ErrInvalidOption     = errors.New("workspace: invalid option")
)
