package dto

import "viewset-bot/pkg/bot"

// TelegramUpdate is the subset of a Bot API update the webhook understands.
type TelegramUpdate struct {
	UpdateId      int64                  `json:"update_id" validate:"required"`
	Message       *TelegramMessage       `json:"message,omitempty"`
	CallbackQuery *TelegramCallbackQuery `json:"callback_query,omitempty"`
}

type TelegramUser struct {
	Id           int64  `json:"id" validate:"required"`
	IsBot        bool   `json:"is_bot"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	LanguageCode string `json:"language_code"`
}

type TelegramChat struct {
	Id int64 `json:"id"`
}

type TelegramMessage struct {
	MessageId int64         `json:"message_id"`
	From      *TelegramUser `json:"from"`
	Chat      TelegramChat  `json:"chat"`
	Text      string        `json:"text"`
}

type TelegramCallbackQuery struct {
	Id      string           `json:"id"`
	From    *TelegramUser    `json:"from"`
	Message *TelegramMessage `json:"message,omitempty"`
	Data    string           `json:"data"`
}

// Event converts the update for the dispatcher. ok is false for update
// kinds the bot does not serve (edits, stickers, inline queries...).
func (u *TelegramUpdate) Event() (event *bot.Event, chatID int64, ok bool) {
	switch {
	case u.CallbackQuery != nil && u.CallbackQuery.From != nil && u.CallbackQuery.Data != "":
		cq := u.CallbackQuery
		event = eventFrom(cq.From)
		event.CallbackData = cq.Data
		chatID = cq.From.Id
		if cq.Message != nil {
			event.MessageID = cq.Message.MessageId
			chatID = cq.Message.Chat.Id
		}
		return event, chatID, true

	case u.Message != nil && u.Message.From != nil && u.Message.Text != "":
		event = eventFrom(u.Message.From)
		event.Text = u.Message.Text
		event.MessageID = u.Message.MessageId
		return event, u.Message.Chat.Id, true
	}
	return nil, 0, false
}

func eventFrom(from *TelegramUser) *bot.Event {
	return &bot.Event{
		ParticipantID: from.Id,
		Username:      from.Username,
		FirstName:     from.FirstName,
		LastName:      from.LastName,
		LanguageCode:  from.LanguageCode,
	}
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// TelegramMethod is a Bot API call returned as the webhook response body.
type TelegramMethod struct {
	Method      string                `json:"method"`
	ChatId      int64                 `json:"chat_id"`
	MessageId   int64                 `json:"message_id,omitempty"`
	Text        string                `json:"text"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// NewTelegramMethod edits the pressed message for callbacks and sends a new
// message otherwise.
func NewTelegramMethod(chatID int64, event *bot.Event, resp *bot.Response) TelegramMethod {
	m := TelegramMethod{Method: "sendMessage", ChatId: chatID, Text: resp.Text}
	if event.IsCallback() && event.MessageID != 0 && !resp.OnlySend {
		m.Method = "editMessageText"
		m.MessageId = event.MessageID
	}
	if len(resp.Buttons) > 0 {
		markup := &InlineKeyboardMarkup{InlineKeyboard: make([][]InlineKeyboardButton, 0, len(resp.Buttons))}
		for _, row := range resp.Buttons {
			buttons := make([]InlineKeyboardButton, 0, len(row))
			for _, b := range row {
				buttons = append(buttons, InlineKeyboardButton{Text: b.Text, CallbackData: b.Data, URL: b.URL})
			}
			markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
		}
		m.ReplyMarkup = markup
	}
	return m
}
