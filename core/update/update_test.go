package update_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GiuseppeFn/televerse/core/update"
)

func TestUpdate_Type(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		u    update.Update
		want update.Type
	}{
		{"message", update.Update{Message: &update.Message{}}, update.TypeMessage},
		{"edited message", update.Update{EditedMessage: &update.Message{}}, update.TypeEditedMessage},
		{"channel post", update.Update{ChannelPost: &update.Message{}}, update.TypeChannelPost},
		{"callback query", update.Update{CallbackQuery: &update.CallbackQuery{}}, update.TypeCallbackQuery},
		{"inline query", update.Update{InlineQuery: &update.InlineQuery{}}, update.TypeInlineQuery},
		{"poll", update.Update{Poll: &update.Poll{}}, update.TypePoll},
		{"poll answer", update.Update{PollAnswer: &update.PollAnswer{}}, update.TypePollAnswer},
		{"my chat member", update.Update{MyChatMember: &update.ChatMemberUpdated{}}, update.TypeMyChatMember},
		{"chat join request", update.Update{ChatJoinRequest: &update.ChatJoinRequest{}}, update.TypeChatJoinRequest},
		{"empty", update.Update{}, update.TypeUnknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.u.Type())
		})
	}
}

func TestUpdate_Text(t *testing.T) {
	t.Parallel()

	t.Run("message text", func(t *testing.T) {
		t.Parallel()
		u := update.Update{Message: &update.Message{Text: "/start"}}
		assert.Equal(t, "/start", u.Text())
	})

	t.Run("caption fallback", func(t *testing.T) {
		t.Parallel()
		u := update.Update{Message: &update.Message{Caption: "a photo"}}
		assert.Equal(t, "a photo", u.Text())
	})

	t.Run("callback data", func(t *testing.T) {
		t.Parallel()
		u := update.Update{CallbackQuery: &update.CallbackQuery{Data: "menu:open"}}
		assert.Equal(t, "menu:open", u.Text())
	})

	t.Run("inline query text", func(t *testing.T) {
		t.Parallel()
		u := update.Update{InlineQuery: &update.InlineQuery{Query: "cats"}}
		assert.Equal(t, "cats", u.Text())
	})

	t.Run("no textual payload", func(t *testing.T) {
		t.Parallel()
		u := update.Update{PollAnswer: &update.PollAnswer{}}
		assert.Empty(t, u.Text())
	})
}

func TestUpdate_ChatAndFrom(t *testing.T) {
	t.Parallel()

	t.Run("message chat and sender", func(t *testing.T) {
		t.Parallel()
		u := update.Update{Message: &update.Message{
			Chat: update.Chat{ID: 42},
			From: &update.User{ID: 7},
		}}
		require.NotNil(t, u.Chat())
		assert.Equal(t, int64(42), u.Chat().ID)
		require.NotNil(t, u.From())
		assert.Equal(t, int64(7), u.From().ID)
	})

	t.Run("callback query falls back to origin message chat", func(t *testing.T) {
		t.Parallel()
		u := update.Update{CallbackQuery: &update.CallbackQuery{
			From:    update.User{ID: 9},
			Message: &update.Message{Chat: update.Chat{ID: 13}},
		}}
		require.NotNil(t, u.Chat())
		assert.Equal(t, int64(13), u.Chat().ID)
		assert.Equal(t, int64(9), u.From().ID)
	})

	t.Run("poll has no chat", func(t *testing.T) {
		t.Parallel()
		u := update.Update{Poll: &update.Poll{}}
		assert.Nil(t, u.Chat())
		assert.Nil(t, u.From())
	})
}

func TestUpdate_UnmarshalWire(t *testing.T) {
	t.Parallel()

	payload := []byte(`{
		"update_id": 1001,
		"message": {
			"message_id": 5,
			"from": {"id": 7, "is_bot": false, "first_name": "Ann", "username": "ann"},
			"chat": {"id": 42, "type": "private"},
			"date": 1700000000,
			"text": "hello"
		}
	}`)

	var u update.Update
	require.NoError(t, json.Unmarshal(payload, &u))

	assert.Equal(t, int64(1001), u.UpdateID)
	assert.Equal(t, update.TypeMessage, u.Type())
	assert.Equal(t, "hello", u.Text())
	assert.Equal(t, "ann", u.From().Username)
}
