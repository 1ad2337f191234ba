package bot

import (
	"bytes"
	"fmt"

	"github.com/eliseohh/demobot/internal/router"
	tele "gopkg.in/telebot.v3"
)

// perform makes exactly one outbound call for a.
func perform(c tele.Context, a router.Action) error {
	switch a.Kind {
	case router.SendText:
		if a.Keyboard != nil {
			return c.Send(a.Text, markup(a.Keyboard))
		}
		return c.Send(a.Text)

	case router.ShowReplyKeyboard:
		return c.Send(a.Text, markup(a.Keyboard))

	case router.RemoveReplyKeyboard:
		return c.Send(a.Text, &tele.ReplyMarkup{RemoveKeyboard: true})

	case router.SendPhoto:
		return c.Send(&tele.Photo{
			File:    tele.FromURL(a.Photo.URL),
			Caption: a.Photo.Caption,
		})

	case router.SendDocument:
		return c.Send(&tele.Document{
			File:     tele.FromReader(bytes.NewReader(a.Document.Content)),
			FileName: a.Document.FileName,
			Caption:  a.Document.Caption,
		})

	case router.SendPoll:
		poll := &tele.Poll{
			Type:      tele.PollRegular,
			Question:  a.Poll.Question,
			Anonymous: a.Poll.Anonymous,
		}
		for _, o := range a.Poll.Options {
			poll.Options = append(poll.Options, tele.PollOption{Text: o})
		}
		return c.Send(poll)

	case router.EditMessageText:
		return c.Edit(a.Text)
	}
	return fmt.Errorf("unsupported action %s", a.Kind)
}

func markup(k *router.Keyboard) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	if k == nil {
		return m
	}

	if k.Inline {
		for _, row := range k.Rows {
			buttons := make([]tele.InlineButton, 0, len(row))
			for _, btn := range row {
				buttons = append(buttons, tele.InlineButton{Text: btn.Label, Data: btn.Data})
			}
			m.InlineKeyboard = append(m.InlineKeyboard, buttons)
		}
		return m
	}

	m.ResizeKeyboard = k.Resize
	for _, row := range k.Rows {
		buttons := make([]tele.ReplyButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tele.ReplyButton{Text: btn.Label})
		}
		m.ReplyKeyboard = append(m.ReplyKeyboard, buttons)
	}
	return m
}
