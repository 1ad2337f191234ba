// Package router maps inbound updates to canned responses. A Router is built
// once at startup and never changes, so it is safe to share between
// goroutines.
package router

import (
	"fmt"
	"sort"
	"strings"
)

type Router struct {
	texts    Texts
	commands map[string]func() Action
	options  map[string]bool
}

func New(t Texts) *Router {
	r := &Router{
		texts:   t,
		options: make(map[string]bool, len(t.Options)),
	}
	for _, o := range t.Options {
		r.options[o] = true
	}
	r.commands = map[string]func() Action{
		"start":    r.start,
		"help":     r.help,
		"keyboard": r.keyboard,
		"photo":    r.photo,
		"document": r.document,
		"poll":     r.poll,
	}
	return r
}

// Commands returns the registered command names, sorted.
func (r *Router) Commands() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Route selects the response for u. The second result is false when the
// update has no response (unknown command or callback data).
func (r *Router) Route(u Update) (Action, bool) {
	switch u.Kind {
	case KindCommand:
		fn, ok := r.commands[strings.ToLower(u.Command)]
		if !ok {
			return Action{}, false
		}
		return fn(), true
	case KindCallback:
		return r.callback(u.Data)
	case KindText:
		return r.text(u.Text), true
	case KindPhoto:
		return Action{Kind: SendText, Text: r.texts.PhotoReceived}, true
	case KindDocument:
		return Action{Kind: SendText, Text: fmt.Sprintf(r.texts.DocumentReceived, u.FileName)}, true
	}
	return Action{}, false
}

func (r *Router) start() Action {
	return Action{
		Kind: SendText,
		Text: r.texts.Welcome,
		Keyboard: &Keyboard{
			Inline: true,
			Rows: [][]Button{
				{{Label: r.texts.Button1, Data: DataButton1}},
				{{Label: r.texts.Button2, Data: DataButton2}},
			},
		},
	}
}

func (r *Router) help() Action {
	return Action{Kind: SendText, Text: r.texts.Help}
}

func (r *Router) keyboard() Action {
	o := r.texts.Options
	return Action{
		Kind: ShowReplyKeyboard,
		Text: r.texts.KeyboardPrompt,
		Keyboard: &Keyboard{
			Resize: true,
			Rows: [][]Button{
				{{Label: o[0]}, {Label: o[1]}},
				{{Label: o[2]}, {Label: o[3]}},
				{{Label: r.texts.RemoveKeyboard}},
			},
		},
	}
}

func (r *Router) photo() Action {
	return Action{
		Kind:  SendPhoto,
		Photo: &PhotoPayload{URL: r.texts.PhotoURL, Caption: r.texts.PhotoCaption},
	}
}

// document builds a fresh buffer per call; the payload is never shared.
func (r *Router) document() Action {
	return Action{
		Kind: SendDocument,
		Document: &DocumentPayload{
			FileName: r.texts.DocumentName,
			Content:  []byte(r.texts.DocumentBody),
			Caption:  r.texts.DocumentCaption,
		},
	}
}

func (r *Router) poll() Action {
	opts := make([]string, len(r.texts.PollOptions))
	copy(opts, r.texts.PollOptions)
	return Action{
		Kind: SendPoll,
		Poll: &PollPayload{Question: r.texts.PollQuestion, Options: opts, Anonymous: false},
	}
}

func (r *Router) callback(data string) (Action, bool) {
	switch data {
	case DataButton1:
		return Action{Kind: EditMessageText, Text: r.texts.Pressed1}, true
	case DataButton2:
		return Action{Kind: EditMessageText, Text: r.texts.Pressed2}, true
	}
	return Action{}, false
}

func (r *Router) text(text string) Action {
	switch {
	case text == r.texts.RemoveKeyboard:
		return Action{Kind: RemoveReplyKeyboard, Text: r.texts.KeyboardRemoved}
	case r.options[text]:
		return Action{Kind: SendText, Text: fmt.Sprintf(r.texts.Selected, text)}
	}
	return Action{Kind: SendText, Text: fmt.Sprintf(r.texts.Echo, text)}
}
