// Package telegram implements the outbound Messenger port over the Telegram
// Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"buffet/internal/core/ports"
)

// DefaultBaseURL is the production Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// DefaultTimeout bounds one sendMessage round trip. Sends happen after the
// state transition committed, so a slow Telegram must not hold anything up
// for long.
const DefaultTimeout = 5 * time.Second

// Client sends messages through the Telegram Bot API. Implements
// ports.Messenger.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Bot API endpoint. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// NewClient creates a Bot API client for the given bot token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type inlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type sendMessageRequest struct {
	ChatID      int64                 `json:"chat_id"`
	Text        string                `json:"text"`
	ReplyMarkup *inlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// SendMessage delivers one message to the chat, attaching the actions as an
// inline keyboard with one button per row.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, actions []ports.Action) error {
	reqBody := sendMessageRequest{
		ChatID: chatID,
		Text:   text,
	}

	if len(actions) > 0 {
		markup := &inlineKeyboardMarkup{
			InlineKeyboard: make([][]inlineKeyboardButton, 0, len(actions)),
		}
		for _, action := range actions {
			markup.InlineKeyboard = append(markup.InlineKeyboard, []inlineKeyboardButton{{
				Text:         action.Label,
				CallbackData: action.Data,
			}})
		}
		reqBody.ReplyMarkup = markup
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return err
	}

	var apiResp apiResponse
	if err = json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("telegram: unexpected response (status %d): %w", resp.StatusCode, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram: sendMessage failed (code %d): %s", apiResp.ErrorCode, apiResp.Description)
	}

	return nil
}
