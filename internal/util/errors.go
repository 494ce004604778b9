package util

import "errors"

var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrResponseNotFound  = errors.New("response not found")
	ErrResponseCompleted = errors.New("response already completed")
	ErrStaleResponse     = errors.New("response was modified concurrently")
	ErrSectionNotFound   = errors.New("section not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrNotAttachable     = errors.New("question does not accept file uploads")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidAttachment = errors.New("invalid attachment")
)
