package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command is one slash command the bot answers.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// AdminOnly commands are answered for the configured admin only.
	AdminOnly bool
	// Hidden commands are left out of the Telegram command menu.
	Hidden  bool
	Aliases []string
}

// Public reports whether the command belongs in the menu published to Telegram.
func (c Command) Public() bool {
	return !c.Hidden && !c.AdminOnly
}
