package entities

import "errors"

// User-facing messages. Causes behind MsgGenerationFailed are only logged.
const (
	MsgNoImage          = "Please upload an image first."
	MsgGenerationFailed = "Failed to generate a joke. Please try again."
	MsgUnsupportedImage = "Please upload a JPEG, PNG, GIF or WebP image."
)

var (
	// ErrNoImage is the validation error for a submit without a selected image.
	ErrNoImage = errors.New("no image selected")

	// ErrRead means the image content could not be read in full.
	ErrRead = errors.New("failed to read image")

	// ErrEmptyResponse means the model answered without any text.
	ErrEmptyResponse = errors.New("the API returned an empty response")

	// ErrTransport wraps any failure of the outbound model call.
	ErrTransport = errors.New("failed to communicate with the AI model")

	// ErrGenerationFailed is the single opaque failure returned for ErrRead,
	// ErrEmptyResponse and ErrTransport.
	ErrGenerationFailed = errors.New("joke generation failed")

	ErrRequestInFlight   = errors.New("a joke request is already in flight")
	ErrInvalidTransition = errors.New("invalid request state transition")
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoInstallPrompt   = errors.New("no install prompt available")
)
