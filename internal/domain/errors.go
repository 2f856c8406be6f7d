package domain

import "errors"

var (
	// ErrNotConfigured signals a missing external credential or client.
	ErrNotConfigured = errors.New("not configured")
	// ErrGenerationFailed signals that every candidate model failed.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrEmptyCompletion signals a model response with no usable text.
	ErrEmptyCompletion = errors.New("empty completion")
	// ErrModelLoading signals that the upstream classifier is still warming up.
	ErrModelLoading = errors.New("model loading")
	// ErrClassifierError signals an image classification provider failure.
	ErrClassifierError = errors.New("image classifier error")
	// ErrEmptyUpload signals an empty or unreadable file upload.
	ErrEmptyUpload = errors.New("empty upload")
)
