package router

import "fmt"

// Kind tags an inbound update.
type Kind int

const (
	KindCommand Kind = iota
	KindCallback
	KindText
	KindPhoto
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindCallback:
		return "callback"
	case KindText:
		return "text"
	case KindPhoto:
		return "photo"
	case KindDocument:
		return "document"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Update is one inbound event. Only the fields that belong to Kind are set.
type Update struct {
	Kind Kind

	// ID and ChatID identify the update for logging. Routing ignores them.
	ID     int
	ChatID int64

	Command  string // KindCommand, without the leading slash
	Data     string // KindCallback
	Text     string // KindText
	FileName string // KindDocument
}

func Command(name string) Update { return Update{Kind: KindCommand, Command: name} }
func Callback(data string) Update { return Update{Kind: KindCallback, Data: data} }
func Text(text string) Update { return Update{Kind: KindText, Text: text} }
func Photo() Update { return Update{Kind: KindPhoto} }
func Document(fileName string) Update { return Update{Kind: KindDocument, FileName: fileName} }

// Trigger renders the update the way it shows up in logs and the journal,
// e.g. "command:/start" or "callback:btn1".
func (u Update) Trigger() string {
	switch u.Kind {
	case KindCommand:
		return "command:/" + u.Command
	case KindCallback:
		return "callback:" + u.Data
	case KindText:
		return "text"
	case KindPhoto:
		return "photo"
	case KindDocument:
		return "document:" + u.FileName
	}
	return u.Kind.String()
}
