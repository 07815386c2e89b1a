package game

// Action describes one observable effect. Actions are produced by menu and
// variant calls, executed in order by a renderer, and never persisted. The
// union is closed: renderers match exhaustively on the types below.
type Action interface {
	isAction()
}

// Button is one inline keyboard button.
type Button struct {
	Label string
	Data  string
}

// SendMessage posts a new chat message, optionally with an inline keyboard.
//
// When TrackSessionID is set, the renderer records the transport-assigned
// message id as that session's pending question message after the send
// succeeds.
type SendMessage struct {
	ChatID         int64
	Text           string
	Keyboard       [][]Button
	TrackSessionID string
}

// EditMessage replaces the text of an existing message.
type EditMessage struct {
	ChatID    int64
	MessageID int
	Text      string
}

// SetKeyboard replaces the inline keyboard of an existing message. A nil
// keyboard strips the buttons.
type SetKeyboard struct {
	ChatID    int64
	MessageID int
	Keyboard  [][]Button
}

// AnswerCallback acknowledges a callback query, optionally with a short
// notice shown to the user.
type AnswerCallback struct {
	CallbackID string
	Text       string
}

func (SendMessage) isAction()    {}
func (EditMessage) isAction()    {}
func (SetKeyboard) isAction()    {}
func (AnswerCallback) isAction() {}
