package router

import "fmt"

// ActionKind is the kind of outbound call a response makes.
type ActionKind int

const (
	SendText ActionKind = iota
	SendPhoto
	SendDocument
	SendPoll
	EditMessageText
	ShowReplyKeyboard
	RemoveReplyKeyboard
)

func (k ActionKind) String() string {
	switch k {
	case SendText:
		return "send_text"
	case SendPhoto:
		return "send_photo"
	case SendDocument:
		return "send_document"
	case SendPoll:
		return "send_poll"
	case EditMessageText:
		return "edit_message_text"
	case ShowReplyKeyboard:
		return "show_reply_keyboard"
	case RemoveReplyKeyboard:
		return "remove_reply_keyboard"
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Action is the single response to an update, sent back on the same chat.
type Action struct {
	Kind ActionKind

	// Text is the message body for SendText, EditMessageText and the
	// keyboard actions.
	Text string

	Photo    *PhotoPayload
	Document *DocumentPayload
	Poll     *PollPayload

	// Keyboard is attached to SendText (inline) or ShowReplyKeyboard (reply).
	Keyboard *Keyboard
}

type PhotoPayload struct {
	URL     string
	Caption string
}

type DocumentPayload struct {
	FileName string
	Content  []byte
	Caption  string
}

type PollPayload struct {
	Question  string
	Options   []string
	Anonymous bool
}

// Keyboard is a grid of buttons. Inline buttons carry callback data; reply
// buttons only have a label.
type Keyboard struct {
	Inline bool
	Resize bool
	Rows   [][]Button
}

type Button struct {
	Label string
	Data  string
}
