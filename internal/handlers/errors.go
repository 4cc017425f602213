package handlers

import (
	"net/http"

	"github.com/pkg/errors"

	"studyfortress/internal/pdfdoc"
	"studyfortress/internal/platform/apierr"
	"studyfortress/internal/platform/logger"
	"studyfortress/internal/workspace"
)

// classify attaches an HTTP status to domain errors.
func classify(err error) error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return err
	}
	switch errors.Cause(err) {
	case workspace.ErrItemNotFound, workspace.ErrPanelNotFound, workspace.ErrTabNotFound,
		workspace.ErrNodeNotFound, workspace.ErrRecordingNotFound:
		return apierr.NotFound("not_found", err)
	case workspace.ErrNotRecording, workspace.ErrAlreadyRecording, workspace.ErrBusy:
		return apierr.Conflict("conflict", err)
	case workspace.ErrEmptySelection, workspace.ErrUnknownKind, workspace.ErrUnknownMethod,
		workspace.ErrBadConnection, workspace.ErrEmptyName, workspace.ErrInvalidOption:
		return apierr.BadRequest("invalid", err)
	case pdfdoc.ErrNotPDF:
		return apierr.BadRequest("not_pdf", err)
	}
	return err
}

func fail(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	err = classify(err)
	status := apierr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(status), status)
		return
	}
	log.Debug("request rejected", "path", r.URL.Path, "code", apierr.CodeOf(err), "error", err)
	http.Error(w, err.Error(), status)
}
