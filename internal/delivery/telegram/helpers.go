package telegram

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newHTMLEdit(chatID int64, messageID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	return edit
}

// parseSingleInt parses a command argument holding exactly one integer.
func parseSingleInt(args string) (int, bool) {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return 0, false
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseRemindersArgs parses "on [hour]" or "off".
// A missing hour is reported as -1 so the caller keeps the current one.
func parseRemindersArgs(args string) (enabled bool, hour int, ok bool) {
	fields := strings.Fields(strings.ToLower(args))
	if len(fields) == 0 || len(fields) > 2 {
		return false, 0, false
	}

	switch fields[0] {
	case "on":
		enabled = true
	case "off":
		if len(fields) != 1 {
			return false, 0, false
		}
		return false, -1, true
	default:
		return false, 0, false
	}

	if len(fields) == 1 {
		return true, -1, true
	}

	h, err := strconv.Atoi(fields[1])
	if err != nil {
		return false, 0, false
	}
	return enabled, h, true
}
