package types

import "errors"

// Validation errors. These become rejection reasons for post/activate
// intents and silent-drop log lines everywhere else.
var (
	ErrInvalidParticipantID = errors.New("participant ID must be 1-64 characters, alphanumeric + underscore/hyphen only")
	ErrInvalidDisplayName   = errors.New("display name must be 1-50 characters")
	ErrEmptyQuestionText    = errors.New("question text cannot be empty")
	ErrQuestionTextTooLong  = errors.New("question text exceeds 500 characters")
	ErrTooFewOptions        = errors.New("question needs at least 2 options")
	ErrTooManyOptions       = errors.New("question cannot have more than 10 options")
	ErrEmptyOptionText      = errors.New("option text cannot be empty")
	ErrOptionTextTooLong    = errors.New("option text exceeds 200 characters")
	ErrDuplicateOptionText  = errors.New("option texts must be unique")
	ErrInvalidDuration      = errors.New("duration must be positive")
)

// Vote application errors.
var (
	ErrDuplicateVote = errors.New("participant already voted on this question")
	ErrUnknownOption = errors.New("option not found on question")
)

// Envelope errors.
var (
	ErrEmptyPayload = errors.New("envelope has no payload")
)
