package ai

import "context"

// AI — the external question-answering service. It knows nothing about the
// database; it only receives a question plus a context snapshot.
type AI interface {
	Ask(ctx context.Context, question string, wctx Context) (string, error)
}

// Context is the whitelisted snapshot of a wedding sent alongside every
// question. Collections are ordered by ascending creation time.
type Context struct {
	Wedding          WeddingContext          `json:"wedding"`
	Guests           []GuestContext          `json:"guests"`
	Tasks            []TaskContext           `json:"tasks"`
	GuestbookEntries []GuestbookEntryContext `json:"guestbook_entries"`
}

type WeddingContext struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Date      *string `json:"date"` // ISO-8601 date or null
	VenueName string  `json:"venue_name"`
}

type GuestContext struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	PlusOneCount int     `json:"plus_one_count"`
	DietaryNotes *string `json:"dietary_notes"`
}

type TaskContext struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

type GuestbookEntryContext struct {
	ID        int64  `json:"id"`
	GuestName string `json:"guest_name"`
	Message   string `json:"message"`
	IsPublic  bool   `json:"is_public"`
}

// RequestError is the single failure kind for the AI client. Transport
// errors, non-2xx statuses, malformed JSON and empty answers all converge
// here so callers map exactly one error type to a 502.
type RequestError struct {
	msg string
}

func (e *RequestError) Error() string { return e.msg }

func NewRequestError(msg string) *RequestError { return &RequestError{msg: msg} }
