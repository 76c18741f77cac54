// Package notify delivers run summaries over Telegram. Delivery sits outside
// the analysis pipeline; a failed notification never affects the result.
package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Tranv-IA/ContenAI/internal/model"
)

// Client sends Telegram messages with bounded retry.
type Client struct {
	bot        *tgbotapi.BotAPI
	chatID     int64
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a Telegram client.
func NewClient(botToken, chatID string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	return &Client{
		bot:        bot,
		chatID:     chatIDInt,
		maxRetries: 3,
		retryDelay: time.Second,
	}, nil
}

// SendRunSummary formats and delivers the outcome of one analysis run.
func (c *Client) SendRunSummary(trends *model.TrendsResult, prediction *model.PredictionResult) error {
	msg := tgbotapi.NewMessage(c.chatID, formatSummary(trends, prediction))

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if _, err := c.bot.Send(msg); err == nil {
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(c.retryDelay * time.Duration(i+1))
	}
	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

func formatSummary(trends *model.TrendsResult, prediction *model.PredictionResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Trend analysis: %s\n\n", trends.Niche)

	if len(trends.TrendingKeywords) > 0 {
		sb.WriteString("Trending keywords:\n")
		for i, tk := range trends.TrendingKeywords {
			if i == 5 {
				break
			}
			fmt.Fprintf(&sb, "%d. %s (+%.1f%%)\n", i+1, tk.Keyword, tk.Growth)
		}
		sb.WriteString("\n")
	}

	if len(trends.Opportunities) > 0 {
		sb.WriteString("Top opportunities:\n")
		for i, o := range trends.Opportunities {
			if i == 3 {
				break
			}
			fmt.Fprintf(&sb, "%d. %s\n", i+1, o.Title)
		}
		sb.WriteString("\n")
	}

	if prediction != nil {
		fmt.Fprintf(&sb, "Forecast confidence: %d/100\n", prediction.ConfidenceScore)
		if len(prediction.NextActions) > 0 {
			fmt.Fprintf(&sb, "Next action: %s\n", prediction.NextActions[0])
		}
	}

	return sb.String()
}
