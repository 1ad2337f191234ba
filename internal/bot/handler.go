package bot

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/eliseohh/demobot/internal/event"
	"github.com/eliseohh/demobot/internal/router"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"
)

type Bot struct {
	api    *tele.Bot
	router *router.Router
	sink   event.Sink
	logger *slog.Logger
	cfg    Config
}

type Config struct {
	Token        string
	PollTimeout  time.Duration
	AllowedChats []int64

	// URL overrides the Bot API endpoint. Empty means api.telegram.org.
	URL string

	// Offline skips the getMe call on startup.
	Offline bool
}

func New(cfg Config, r *router.Router, logger *slog.Logger, sink event.Sink) (*Bot, error) {
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 10 * time.Second
	}
	if sink == nil {
		sink = event.Multi{}
	}

	bot := &Bot{router: r, sink: sink, logger: logger, cfg: cfg}

	pref := tele.Settings{
		URL:     cfg.URL,
		Token:   cfg.Token,
		Poller:  &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: bot.onError,
		Offline: cfg.Offline,

		// One update at a time, in arrival order.
		Synchronous: true,
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	bot.api = b
	bot.register()
	return bot, nil
}

// Start runs the long-poll loop until Stop is called.
func (b *Bot) Start() {
	b.logger.Info("bot started", "username", b.api.Me.Username, "poll_timeout", b.cfg.PollTimeout)
	b.api.Start()
}

func (b *Bot) Stop() {
	b.api.Stop()
	b.logger.Info("bot stopped")
}

// SendText delivers a plain message outside of any update, e.g. from the
// outbox.
func (b *Bot) SendText(chatID int64, text string) error {
	if _, err := b.api.Send(tele.ChatID(chatID), text); err != nil {
		return fmt.Errorf("send to %d: %w", chatID, err)
	}
	return nil
}

func (b *Bot) register() {
	b.api.Use(middleware.Recover(b.onError))
	b.api.Use(middleware.AutoRespond())
	if len(b.cfg.AllowedChats) > 0 {
		b.api.Use(allowChats(b.cfg.AllowedChats))
	}

	for _, name := range b.router.Commands() {
		b.api.Handle("/"+name, b.handleCommand(name))
	}

	b.api.Handle(tele.OnCallback, b.handleCallback)
	b.api.Handle(tele.OnText, b.handleText)
	b.api.Handle(tele.OnPhoto, b.handlePhoto)
	b.api.Handle(tele.OnDocument, b.handleDocument)
}

func (b *Bot) handleCommand(name string) tele.HandlerFunc {
	return func(c tele.Context) error {
		return b.dispatch(c, router.Command(name))
	}
}

func (b *Bot) handleCallback(c tele.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}
	return b.dispatch(c, router.Callback(cb.Data))
}

// Commands without a registered handler land here too. They are routed as
// commands so they never echo back as text.
func (b *Bot) handleText(c tele.Context) error {
	text := c.Message().Text
	if name, ok := parseCommand(text); ok {
		return b.dispatch(c, router.Command(name))
	}
	return b.dispatch(c, router.Text(text))
}

func (b *Bot) handlePhoto(c tele.Context) error {
	return b.dispatch(c, router.Photo())
}

func (b *Bot) handleDocument(c tele.Context) error {
	var name string
	if doc := c.Message().Document; doc != nil {
		name = doc.FileName
	}
	return b.dispatch(c, router.Document(name))
}

func (b *Bot) dispatch(c tele.Context, u router.Update) error {
	u.ID = c.Update().ID
	if chat := c.Chat(); chat != nil {
		u.ChatID = chat.ID
	}

	a, ok := b.router.Route(u)
	if !ok {
		b.logger.Debug("no route", "update_id", u.ID, "chat_id", u.ChatID, "trigger", u.Trigger())
		return nil
	}

	err := perform(c, a)
	b.sink.Observe(event.New(u.ID, u.ChatID, u.Trigger(), a.Kind.String(), err))
	if err != nil {
		return fmt.Errorf("%s for %s: %w", a.Kind, u.Trigger(), err)
	}

	b.logger.Info("handled", "update_id", u.ID, "chat_id", u.ChatID, "trigger", u.Trigger(), "action", a.Kind.String())
	return nil
}

func (b *Bot) onError(err error, c tele.Context) {
	if c != nil && c.Chat() != nil {
		b.logger.Error("update failed", "chat_id", c.Chat().ID, "error", err)
		return
	}
	b.logger.Error("bot error", "error", err)
}

// allowChats drops updates from chats not in ids. middleware.Whitelist
// matches the sender instead, which never equals a group's chat id.
func allowChats(ids []int64) tele.MiddlewareFunc {
	allowed := make(map[int64]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if chat := c.Chat(); chat == nil || !allowed[chat.ID] {
				return nil
			}
			return next(c)
		}
	}
}

// Same shape Telegram marks as a bot_command: ASCII word chars after the
// slash, an optional @botname, then whitespace or end of text.
var reCommand = regexp.MustCompile(`^/(\w+)(?:@\w+)?(?:\s|$)`)

// parseCommand extracts the command name from "/name", "/name args" or
// "/name@botname args".
func parseCommand(text string) (string, bool) {
	m := reCommand.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}
