package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const askPath = "/ask"

// Client talks to the external AI service over plain HTTP. One attempt per
// call; the timeout bounds connect and read together.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type askPayload struct {
	Question         string                  `json:"question"`
	Wedding          WeddingContext          `json:"wedding"`
	Guests           []GuestContext          `json:"guests"`
	Tasks            []TaskContext           `json:"tasks"`
	GuestbookEntries []GuestbookEntryContext `json:"guestbook_entries"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

func (c *Client) Ask(ctx context.Context, question string, wctx Context) (string, error) {
	payload := askPayload{
		Question:         question,
		Wedding:          wctx.Wedding,
		Guests:           wctx.Guests,
		Tasks:            wctx.Tasks,
		GuestbookEntries: wctx.GuestbookEntries,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", NewRequestError(err.Error())
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+askPath,
		bytes.NewReader(b),
	)
	if err != nil {
		return "", NewRequestError(err.Error())
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("[ai] request failed")
		return "", NewRequestError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewRequestError(err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", NewRequestError(fmt.Sprintf(
			"AI service request failed (%d): %s", resp.StatusCode, string(body),
		))
	}

	var parsed askResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", NewRequestError(fmt.Sprintf(
			"AI service response was not valid JSON: %s", err.Error(),
		))
	}

	if strings.TrimSpace(parsed.Answer) == "" {
		return "", NewRequestError("AI service returned an empty answer.")
	}

	return parsed.Answer, nil
}
