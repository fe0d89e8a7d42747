// Package update defines the event model shared by the fetchers and the
// dispatcher. An Update is an immutable tagged union over the event kinds a
// bot can receive (message, edited message, callback interaction, poll
// change, chat-membership change, and so on). Exactly one variant field is
// populated per update; the derived Type drives handler eligibility.
//
// The domain records in this package (Message, User, Chat, ...) are
// deliberately minimal boundary types carrying only the fields the dispatch
// pipeline needs. They are not a complete mapping of the platform API.
//
// # Basic Usage
//
//	var u update.Update
//	if err := json.Unmarshal(payload, &u); err != nil {
//	    return err
//	}
//
//	switch u.Type() {
//	case update.TypeMessage:
//	    fmt.Println(u.Message.Text)
//	case update.TypeCallbackQuery:
//	    fmt.Println(u.CallbackQuery.Data)
//	}
//
// Update.Text returns the textual payload of whichever variant is populated,
// which is what scope patterns match against.
package update
