package game

import (
	"context"

	"github.com/arkadios/glossabot/ai"
	"github.com/arkadios/glossabot/models"
)

// FactGenerator is the narrow contract the facts variant requires from the
// AI provider.
type FactGenerator interface {
	Generate(ctx context.Context, req ai.Request) (*ai.FactQuestion, error)
}

// Update is the transport-neutral view of one inbound chat event.
type Update struct {
	OwnerID int64
	ChatID  int64

	// MessageID is, for callback updates, the message the tapped keyboard
	// was attached to.
	MessageID int

	// CallbackID is non-empty for callback updates.
	CallbackID string

	// Data is the callback payload.
	Data string

	// Text is the message text for plain-message updates.
	Text string
}

// IsCallback reports whether the update is a callback query.
func (u Update) IsCallback() bool { return u.CallbackID != "" }

// Input is one variant's typed input, produced by BuildInput.
type Input interface {
	isInput()
}

// AnswerInput is a tapped answer button.
type AnswerInput struct {
	Update    Update
	SessionID string
	Index     int
}

// TextInput is a typed free-text answer.
type TextInput struct {
	Update Update
	Text   string
}

func (AnswerInput) isInput() {}
func (TextInput) isInput()   {}

// Variant implements one play style behind the shared lifecycle contract.
// Variants read and write the session store and pool/AI providers but never
// call the transport; every observable effect is returned as an Action.
type Variant interface {
	// Modes lists the play modes this variant serves.
	Modes() []models.Mode

	// BuildInput extracts the variant's typed input from an update,
	// reporting false when the update is not addressed to it.
	BuildInput(u Update) (Input, bool)

	// Begin creates a fresh session for the owner, superseding any prior
	// one, and returns the level-confirmation and first-question actions.
	Begin(ctx context.Context, u Update, mode models.Mode, level, category string) []Action

	// Invoke resolves one answer: scores it, advances or completes the
	// session. When the input came from a callback, the first returned
	// action acknowledges it. A nil result means the input turned out not
	// to be addressed to this variant; the dispatcher falls through.
	Invoke(ctx context.Context, in Input) []Action
}
