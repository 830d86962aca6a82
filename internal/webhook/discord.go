package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"tierlist_backend/internal/domain"
)

var discordURLRe = regexp.MustCompile(`^https://(discord\.com|discordapp\.com)/api/webhooks/[0-9]+/[A-Za-z0-9_-]+$`)

// ValidURL reports whether url is a well-formed Discord webhook URL. Anything
// else is never sent to.
func ValidURL(url string) bool {
	return discordURLRe.MatchString(url)
}

// Message is one outbound notification: the player's identity plus their
// full tier list as resolved at send time.
type Message struct {
	Username    string
	Avatar      string
	CombatTitle string
	Tiers       []domain.Tier
}

// Sender delivers a message to a webhook URL.
type Sender interface {
	Send(ctx context.Context, url string, m Message) error
}

// DiscordSender posts messages as Discord embeds.
type DiscordSender struct {
	client *http.Client
}

func NewDiscordSender() *DiscordSender {
	return &DiscordSender{client: &http.Client{Timeout: 10 * time.Second}}
}

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Thumbnail   *struct {
		URL string `json:"url"`
	} `json:"thumbnail,omitempty"`
}

type discordPayload struct {
	Username string         `json:"username"`
	Embeds   []discordEmbed `json:"embeds"`
}

func (s *DiscordSender) Send(ctx context.Context, url string, m Message) error {
	var lines []string
	for _, t := range m.Tiers {
		lines = append(lines, fmt.Sprintf("**%s**: %s", t.Category, t.Grade))
	}

	embed := discordEmbed{
		Title:       fmt.Sprintf("%s — %s", m.Username, m.CombatTitle),
		Description: strings.Join(lines, "\n"),
		Color:       0x5865F2,
	}
	if m.Avatar != "" {
		embed.Thumbnail = &struct {
			URL string `json:"url"`
		}{URL: m.Avatar}
	}

	body, err := json.Marshal(discordPayload{
		Username: "Tier List",
		Embeds:   []discordEmbed{embed},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
