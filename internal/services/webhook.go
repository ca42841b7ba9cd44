package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

var webhookClient = &http.Client{Timeout: 10 * time.Second}

// SendWebhook posts a Slack-compatible event message to WEBHOOK_URL.
// Best-effort: callers treat failures as non-fatal.
func SendWebhook(title, text string, fields []SlackField) error {
	webhookURL := os.Getenv("WEBHOOK_URL")

	if webhookURL == "" {
		return nil
	}

	payload := SlackWebhookRequest{
		Username:  "TeamHub",
		IconEmoji: ":calendar:",
		Text:      title,
		Attachments: []SlackAttachment{
			{
				Color:     "#f2c744",
				Title:     title,
				Text:      text,
				Fields:    fields,
				Footer:    "TeamHub",
				Timestamp: time.Now().Unix(),
			},
		},
	}

	body, err := json.Marshal(payload)

	if err != nil {
		return err
	}

	resp, err := webhookClient.Post(webhookURL, "application/json", bytes.NewReader(body))

	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
