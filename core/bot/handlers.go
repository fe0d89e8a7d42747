package bot

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/GiuseppeFn/televerse/core/dispatcher"
	"github.com/GiuseppeFn/televerse/core/logger"
	"github.com/GiuseppeFn/televerse/core/update"
)

// Handle registers a raw dispatch scope. The builders below construct
// common scopes; anything they don't cover goes through here.
func (b *Bot) Handle(s dispatcher.Scope) {
	b.dispatcher.Handle(s)
}

// Remove deregisters every scope with the given name.
func (b *Bot) Remove(name string) int {
	return b.dispatcher.Remove(name)
}

// RemoveWhere deregisters every scope the predicate reports true for.
func (b *Bot) RemoveWhere(pred func(dispatcher.Scope) bool) int {
	return b.dispatcher.RemoveWhere(pred)
}

// OnMessage registers a handler for every incoming message.
func (b *Bot) OnMessage(name string, h dispatcher.HandlerFunc) error {
	if h == nil {
		return ErrNilHandler
	}
	b.Handle(dispatcher.Scope{
		Name:    name,
		Types:   []update.Type{update.TypeMessage},
		Handler: h,
	})
	return nil
}

// OnEditedMessage registers a handler for message edits.
func (b *Bot) OnEditedMessage(name string, h dispatcher.HandlerFunc) error {
	if h == nil {
		return ErrNilHandler
	}
	b.Handle(dispatcher.Scope{
		Name:    name,
		Types:   []update.Type{update.TypeEditedMessage},
		Handler: h,
	})
	return nil
}

// OnCommand registers a handler for a slash command. The pattern accepts an
// optional @handle suffix and captures the argument tail, exposed to the
// handler via dispatcher.Matches.
func (b *Bot) OnCommand(command string, h dispatcher.HandlerFunc) error {
	if h == nil {
		return ErrNilHandler
	}

	command = strings.TrimPrefix(command, "/")
	pattern, err := regexp.Compile(`^/` + regexp.QuoteMeta(command) + `(?:@\w+)?(?:\s+(.*))?$`)
	if err != nil {
		return fmt.Errorf("bot: compile command pattern: %w", err)
	}

	b.Handle(dispatcher.Scope{
		Name:    "command:" + command,
		Types:   []update.Type{update.TypeMessage},
		Pattern: pattern,
		Handler: h,
	})
	return nil
}

// OnCallbackQuery registers a handler for callback queries whose data
// matches the pattern. Captured groups are exposed via dispatcher.Matches.
func (b *Bot) OnCallbackQuery(pattern *regexp.Regexp, h dispatcher.HandlerFunc) error {
	if h == nil {
		return ErrNilHandler
	}
	b.Handle(dispatcher.Scope{
		Name:    "callback:" + pattern.String(),
		Types:   []update.Type{update.TypeCallbackQuery},
		Pattern: pattern,
		Handler: h,
	})
	return nil
}

// OnMention registers a handler for messages mentioning the bot's handle.
// The registration needs the resolved identity: while resolution is in
// flight it is queued and applied once the identity is known; before Start
// has launched resolution it is dropped with a warning.
func (b *Bot) OnMention(name string, h dispatcher.HandlerFunc) error {
	if h == nil {
		return ErrNilHandler
	}

	b.identity.whenResolved(func(me *update.User) {
		if me.Username == "" {
			b.logger.Warn("mention scope skipped, identity has no username",
				logger.Component("bot"),
				logger.Scope(name))
			return
		}

		handle := "@" + me.Username
		b.Handle(dispatcher.Scope{
			Name:  name,
			Types: []update.Type{update.TypeMessage},
			Predicate: func(u update.Update) bool {
				return strings.Contains(u.Text(), handle)
			},
			Handler: h,
		})
	})
	return nil
}

// NextStep registers a one-shot rule for the next user message in the
// reference message's chat. It matches message IDs at reference+1 or
// reference+2, accommodating an intervening reply from the bot itself, and
// removes itself after firing once. Returns the generated scope name so the
// caller can cancel the rule early with Remove.
func (b *Bot) NextStep(ref *update.Message, h dispatcher.HandlerFunc) (string, error) {
	if ref == nil {
		return "", ErrNilReference
	}
	if h == nil {
		return "", ErrNilHandler
	}

	name := "next-step:" + uuid.NewString()
	chatID := ref.Chat.ID
	refID := ref.MessageID

	b.Handle(dispatcher.Scope{
		Name:  name,
		Types: []update.Type{update.TypeMessage},
		Predicate: func(u update.Update) bool {
			msg := u.Msg()
			if msg == nil || msg.Chat.ID != chatID {
				return false
			}
			return msg.MessageID == refID+1 || msg.MessageID == refID+2
		},
		Handler: func(ctx context.Context, u update.Update) error {
			defer b.Remove(name)
			return h(ctx, u)
		},
	})
	return name, nil
}
