package update

// Type names the kind of event an Update carries. It is derived from the
// populated variant and determines which scopes are eligible to handle it.
type Type string

const (
	TypeMessage           Type = "message"
	TypeEditedMessage     Type = "edited_message"
	TypeChannelPost       Type = "channel_post"
	TypeEditedChannelPost Type = "edited_channel_post"
	TypeCallbackQuery     Type = "callback_query"
	TypeInlineQuery       Type = "inline_query"
	TypePoll              Type = "poll"
	TypePollAnswer        Type = "poll_answer"
	TypeMyChatMember      Type = "my_chat_member"
	TypeChatMember        Type = "chat_member"
	TypeChatJoinRequest   Type = "chat_join_request"
	TypeUnknown           Type = "unknown"
)

// AllTypes lists every known update kind, in wire order.
func AllTypes() []Type {
	return []Type{
		TypeMessage, TypeEditedMessage, TypeChannelPost, TypeEditedChannelPost,
		TypeCallbackQuery, TypeInlineQuery, TypePoll, TypePollAnswer,
		TypeMyChatMember, TypeChatMember, TypeChatJoinRequest,
	}
}

// Update is one unit of information received from the platform. Exactly one
// variant field is populated. Updates are value types and are never mutated
// after they enter the pipeline.
type Update struct {
	UpdateID int64 `json:"update_id"`

	Message           *Message           `json:"message,omitempty"`
	EditedMessage     *Message           `json:"edited_message,omitempty"`
	ChannelPost       *Message           `json:"channel_post,omitempty"`
	EditedChannelPost *Message           `json:"edited_channel_post,omitempty"`
	CallbackQuery     *CallbackQuery     `json:"callback_query,omitempty"`
	InlineQuery       *InlineQuery       `json:"inline_query,omitempty"`
	Poll              *Poll              `json:"poll,omitempty"`
	PollAnswer        *PollAnswer        `json:"poll_answer,omitempty"`
	MyChatMember      *ChatMemberUpdated `json:"my_chat_member,omitempty"`
	ChatMember        *ChatMemberUpdated `json:"chat_member,omitempty"`
	ChatJoinRequest   *ChatJoinRequest   `json:"chat_join_request,omitempty"`
}

// Type derives the update kind from the populated variant.
func (u Update) Type() Type {
	switch {
	case u.Message != nil:
		return TypeMessage
	case u.EditedMessage != nil:
		return TypeEditedMessage
	case u.ChannelPost != nil:
		return TypeChannelPost
	case u.EditedChannelPost != nil:
		return TypeEditedChannelPost
	case u.CallbackQuery != nil:
		return TypeCallbackQuery
	case u.InlineQuery != nil:
		return TypeInlineQuery
	case u.Poll != nil:
		return TypePoll
	case u.PollAnswer != nil:
		return TypePollAnswer
	case u.MyChatMember != nil:
		return TypeMyChatMember
	case u.ChatMember != nil:
		return TypeChatMember
	case u.ChatJoinRequest != nil:
		return TypeChatJoinRequest
	default:
		return TypeUnknown
	}
}

// Msg returns the message variant the update carries, regardless of whether
// it arrived as a new message, an edit, or a channel post. Returns nil for
// non-message updates.
func (u Update) Msg() *Message {
	switch {
	case u.Message != nil:
		return u.Message
	case u.EditedMessage != nil:
		return u.EditedMessage
	case u.ChannelPost != nil:
		return u.ChannelPost
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost
	case u.CallbackQuery != nil:
		return u.CallbackQuery.Message
	default:
		return nil
	}
}

// Text returns the textual payload of the populated variant. This is the
// string scope patterns are matched against. Returns "" when the variant has
// no textual payload.
func (u Update) Text() string {
	switch {
	case u.CallbackQuery != nil:
		return u.CallbackQuery.Data
	case u.InlineQuery != nil:
		return u.InlineQuery.Query
	case u.Poll != nil:
		return u.Poll.Question
	default:
		if m := u.Msg(); m != nil {
			if m.Text != "" {
				return m.Text
			}
			return m.Caption
		}
		return ""
	}
}

// Chat returns the conversation the update belongs to, or nil for updates
// that are not bound to a chat (inline queries, poll state changes).
func (u Update) Chat() *Chat {
	switch {
	case u.MyChatMember != nil:
		return &u.MyChatMember.Chat
	case u.ChatMember != nil:
		return &u.ChatMember.Chat
	case u.ChatJoinRequest != nil:
		return &u.ChatJoinRequest.Chat
	default:
		if m := u.Msg(); m != nil {
			return &m.Chat
		}
		return nil
	}
}

// From returns the user who originated the update, or nil when the platform
// did not attach one.
func (u Update) From() *User {
	switch {
	case u.CallbackQuery != nil:
		return &u.CallbackQuery.From
	case u.InlineQuery != nil:
		return &u.InlineQuery.From
	case u.PollAnswer != nil:
		return &u.PollAnswer.User
	case u.MyChatMember != nil:
		return &u.MyChatMember.From
	case u.ChatMember != nil:
		return &u.ChatMember.From
	case u.ChatJoinRequest != nil:
		return &u.ChatJoinRequest.From
	default:
		if m := u.Msg(); m != nil {
			return m.From
		}
		return nil
	}
}
