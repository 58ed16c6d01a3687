package share

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RetentionWindow is how long a staged payload stays readable. Older
// payloads are treated as expired and discarded on the next read.
const RetentionWindow = 7 * 24 * time.Hour

// Payload is one incoming share (URL and/or text) staged in the inbox until
// the signed-in app consumes it into an add-plan prefill.
type Payload struct {
	ID        string
	Text      string
	URL       string
	Title     string
	Details   string
	CreatedAt time.Time
}

// NewPayload stages a share with a generated id and derived title/details.
func NewPayload(text, rawURL string, now time.Time) Payload {
	return Payload{
		ID:        uuid.NewString(),
		Text:      text,
		URL:       rawURL,
		Title:     DeriveTitle(text, rawURL),
		Details:   DeriveDetails(text, rawURL),
		CreatedAt: now.UTC(),
	}
}

func (p Payload) ExpiresAt() time.Time {
	return p.CreatedAt.Add(RetentionWindow)
}

func (p Payload) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt())
}

// DeriveTitle takes the first non-empty line of the shared text, falling
// back to the URL's host with a leading "www." stripped.
func DeriveTitle(text, rawURL string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// DeriveDetails concatenates the trimmed text and the URL, omitting the URL
// when it already appears verbatim in the text.
func DeriveDetails(text, rawURL string) string {
	trimmedText := strings.TrimSpace(text)
	trimmedURL := strings.TrimSpace(rawURL)

	parts := make([]string, 0, 2)
	if trimmedText != "" {
		parts = append(parts, trimmedText)
	}
	if trimmedURL != "" && !strings.Contains(trimmedText, trimmedURL) {
		parts = append(parts, trimmedURL)
	}
	return strings.Join(parts, "\n")
}
