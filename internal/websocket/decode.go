package websocket

import (
	"encoding/json"
	"fmt"

	"livepoll/internal/poll"
	"livepoll/pkg/types"
)

// Inbound payload shapes. Field names match the original client wire
// format.

type registerPayload struct {
	ParticipantID string `json:"participantId"`
	DisplayName   string `json:"displayName"`
}

type postPayload struct {
	QuestionText    string   `json:"questionText"`
	Options         []string `json:"options"`
	DurationSeconds int      `json:"durationSeconds"`
}

type votePayload struct {
	QuestionID         string `json:"questionId"`
	SelectedOptionText string `json:"selectedOptionText"`
	ParticipantID      string `json:"participantId"`
}

type activatePayload struct {
	QuestionID      string `json:"questionId"`
	DurationSeconds int    `json:"durationSeconds"`
}

func decodeEnvelope(data []byte) (*types.Envelope, error) {
	var env types.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, ErrInvalidJSON
	}
	if env.Type == "" {
		return nil, ErrUnknownMessageType
	}
	return &env, nil
}

// decodeIntent maps an envelope onto the coordinator's closed intent
// set, stamping it with the sending connection's handle.
func decodeIntent(handle string, env *types.Envelope) (poll.Intent, error) {
	switch env.Type {
	case types.IntentRegisterParticipant:
		var p registerPayload
		if err := env.DecodePayload(&p); err != nil {
			return nil, err
		}
		return poll.RegisterParticipant{
			Handle:        handle,
			ParticipantID: p.ParticipantID,
			DisplayName:   p.DisplayName,
		}, nil

	case types.IntentPostQuestion:
		var p postPayload
		if err := env.DecodePayload(&p); err != nil {
			return nil, err
		}
		return poll.PostQuestion{
			Handle:          handle,
			QuestionText:    p.QuestionText,
			Options:         p.Options,
			DurationSeconds: p.DurationSeconds,
		}, nil

	case types.IntentSubmitVote:
		var p votePayload
		if err := env.DecodePayload(&p); err != nil {
			return nil, err
		}
		return poll.SubmitVote{
			Handle:        handle,
			QuestionID:    p.QuestionID,
			OptionText:    p.SelectedOptionText,
			ParticipantID: p.ParticipantID,
		}, nil

	case types.IntentActivateQuestion:
		var p activatePayload
		if err := env.DecodePayload(&p); err != nil {
			return nil, err
		}
		return poll.ActivateQuestion{
			Handle:          handle,
			QuestionID:      p.QuestionID,
			DurationSeconds: p.DurationSeconds,
		}, nil

	case types.IntentDeactivateQuestion:
		return poll.DeactivateQuestion{Handle: handle}, nil

	case types.IntentChatMessage:
		var msg types.ChatMessage
		if err := env.DecodePayload(&msg); err != nil {
			return nil, err
		}
		return poll.RelayChat{Handle: handle, Message: msg}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessageType, env.Type)
	}
}
