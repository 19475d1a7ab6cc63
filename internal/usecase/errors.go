package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")

	// ErrGenerationFailed: the question service produced zero usable questions
	// for the requested configuration. No session is created.
	ErrGenerationFailed = errors.New("question generation failed")

	// ErrLimitReached: the identity already started its allowed interviews
	// today. Not retryable until the next calendar day or an upgrade.
	ErrLimitReached = errors.New("daily interview limit reached")

	// ErrRoundNotAllowed: the selected round type is not in the tier's
	// entitlements.
	ErrRoundNotAllowed = errors.New("round type not allowed for tier")

	// ErrServiceUnavailable: transient failure talking to an external
	// collaborator. The same call may be retried with identical state.
	ErrServiceUnavailable = errors.New("external service unavailable")

	ErrAlreadyAnswered  = errors.New("current question already answered")
	ErrAnswerPending    = errors.New("current question has no feedback yet")
	ErrSessionCompleted = errors.New("session already completed")
)
