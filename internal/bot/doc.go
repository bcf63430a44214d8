// Package bot is the Telegram surface: subscription management through
// inline keyboards, upcoming-competition queries, calendar export and a
// small admin interface.
//
// Conversation state lives on the App instance behind a mutex; the only
// stateful flow today is the free-text discipline search.
package bot
