package types

import (
	"regexp"
)

// Compiled once; participant IDs are validated on every register and vote.
var participantIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// IsValidParticipantID checks the client-supplied identity format.
// IDs are trusted but not unbounded: 1-64 chars, alphanumeric plus
// underscore/hyphen (the original frontend generates uuidv4 strings).
func IsValidParticipantID(id string) bool {
	if len(id) < 1 || len(id) > 64 {
		return false
	}
	return participantIDRegex.MatchString(id)
}

// IsValidDisplayName bounds the self-declared name shown to other
// participants.
func IsValidDisplayName(name string) bool {
	return len(name) >= 1 && len(name) <= 50
}

// ValidateQuestion checks a post intent's question text, option list and
// duration before a Question is created. Option texts must be unique
// because votes key on option text, not position.
func ValidateQuestion(text string, options []string, durationSeconds int) error {
	if text == "" {
		return ErrEmptyQuestionText
	}
	if len(text) > 500 {
		return ErrQuestionTextTooLong
	}
	if len(options) < 2 {
		return ErrTooFewOptions
	}
	if len(options) > 10 {
		return ErrTooManyOptions
	}
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if opt == "" {
			return ErrEmptyOptionText
		}
		if len(opt) > 200 {
			return ErrOptionTextTooLong
		}
		if _, dup := seen[opt]; dup {
			return ErrDuplicateOptionText
		}
		seen[opt] = struct{}{}
	}
	if durationSeconds <= 0 {
		return ErrInvalidDuration
	}
	return nil
}
