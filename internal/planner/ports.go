package planner

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------
// DOMAIN RECORDS
// --------------------------------------------------

type Wedding struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Date      Date      `db:"date"`
	VenueName string    `db:"venue_name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Guest struct {
	ID           int64     `db:"id"`
	WeddingID    int64     `db:"wedding_id"`
	Name         string    `db:"name"`
	Email        *string   `db:"email"`
	Phone        *string   `db:"phone"`
	PlusOneCount int       `db:"plus_one_count"`
	DietaryNotes *string   `db:"dietary_notes"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Task struct {
	ID        int64        `db:"id"`
	WeddingID int64        `db:"wedding_id"`
	Title     string       `db:"title"`
	Status    TaskStatus   `db:"status"`
	Priority  TaskPriority `db:"priority"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

type GuestbookEntry struct {
	ID        int64     `db:"id"`
	WeddingID int64     `db:"wedding_id"`
	GuestName string    `db:"guest_name"`
	Message   string    `db:"message"`
	IsPublic  bool      `db:"is_public"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// WeddingData is a wedding plus its children loaded in ascending creation
// order, ready for the ask-context builder.
type WeddingData struct {
	Wedding          Wedding
	Guests           []Guest
	Tasks            []Task
	GuestbookEntries []GuestbookEntry
}

// --------------------------------------------------
// DATE — CALENDAR DATE WITHOUT TIME COMPONENT
// --------------------------------------------------

const dateLayout = "2006-01-02"

// Date wraps time.Time to read/write bare ISO-8601 dates in JSON and to scan
// Postgres DATE columns.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		// fall back to full timestamps from clients that send them
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid date %q", s)
		}
	}
	*d = NewDate(t)
	return nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		t, err := time.Parse(dateLayout, string(v))
		if err != nil {
			return err
		}
		*d = NewDate(t)
		return nil
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// --------------------------------------------------
// TASK ENUMS
// --------------------------------------------------

// Task status and priority are closed integer enums. External callers may
// send either the label or the numeric value; unknown values decode to an
// invalid marker that fails validation instead of aborting the request.

type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusInProgress
	StatusDone

	StatusInvalid TaskStatus = -1
)

var statusNames = map[TaskStatus]string{
	StatusPending:    "pending",
	StatusInProgress: "in_progress",
	StatusDone:       "done",
}

var statusValues = map[string]TaskStatus{
	"pending":     StatusPending,
	"in_progress": StatusInProgress,
	"done":        StatusDone,
}

func (s TaskStatus) Valid() bool { return s >= StatusPending && s <= StatusDone }

func (s TaskStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "invalid"
}

func (s TaskStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TaskStatus) UnmarshalJSON(b []byte) error {
	if v, ok := statusValues[parseEnumLabel(b)]; ok {
		*s = v
	} else if n, ok := parseEnumNumber(b, len(statusValues)); ok {
		*s = TaskStatus(n)
	} else {
		*s = StatusInvalid
	}
	return nil
}

type TaskPriority int

const (
	PriorityLow TaskPriority = iota
	PriorityMedium
	PriorityHigh

	PriorityInvalid TaskPriority = -1
)

var priorityNames = map[TaskPriority]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

var priorityValues = map[string]TaskPriority{
	"low":    PriorityLow,
	"medium": PriorityMedium,
	"high":   PriorityHigh,
}

func (p TaskPriority) Valid() bool { return p >= PriorityLow && p <= PriorityHigh }

func (p TaskPriority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "invalid"
}

func (p TaskPriority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *TaskPriority) UnmarshalJSON(b []byte) error {
	if v, ok := priorityValues[parseEnumLabel(b)]; ok {
		*p = v
	} else if n, ok := parseEnumNumber(b, len(priorityValues)); ok {
		*p = TaskPriority(n)
	} else {
		*p = PriorityInvalid
	}
	return nil
}

// parseEnumLabel extracts a JSON string value, or "" when b is not a string.
func parseEnumLabel(b []byte) string {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ""
	}
	return s
}

// parseEnumNumber accepts a bare number or a numeric string within [0, size).
func parseEnumNumber(b []byte, size int) (int, bool) {
	raw := strings.Trim(strings.TrimSpace(string(b)), `"`)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n >= size {
		return 0, false
	}
	return n, true
}

// --------------------------------------------------
// REQUEST PARAMS
// --------------------------------------------------

// Params use pointers so partial updates only touch supplied fields.

type WeddingParams struct {
	Name      *string `json:"name"`
	Date      *Date   `json:"date"`
	VenueName *string `json:"venue_name"`
}

type GuestParams struct {
	WeddingID    *int64  `json:"wedding_id"`
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	PlusOneCount *int    `json:"plus_one_count"`
	DietaryNotes *string `json:"dietary_notes"`
}

type TaskParams struct {
	WeddingID *int64        `json:"wedding_id"`
	Title     *string       `json:"title"`
	Status    *TaskStatus   `json:"status"`
	Priority  *TaskPriority `json:"priority"`
}

type GuestbookEntryParams struct {
	WeddingID *int64  `json:"wedding_id"`
	GuestName *string `json:"guest_name"`
	Message   *string `json:"message"`
	IsPublic  *bool   `json:"is_public"`
}

// --------------------------------------------------
// ERRORS
// --------------------------------------------------

// ErrBlankQuestion rejects ask requests with an empty or whitespace-only
// question before any AI call is made.
var ErrBlankQuestion = errors.New("Question cannot be blank.")

// NotFoundError reports a missing record. ID is `any` so raw, non-numeric
// path segments show up verbatim in the message.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Couldn't find %s with 'id'=%v", e.Resource, e.ID)
}

// ValidationError carries field-level failures as field → messages.
type ValidationError struct {
	Errors map[string][]string
}

func (e *ValidationError) Error() string {
	var parts []string
	for field, msgs := range e.Errors {
		for _, m := range msgs {
			parts = append(parts, field+" "+m)
		}
	}
	return "Validation failed: " + strings.Join(parts, ", ")
}

// --------------------------------------------------
// PORTS
// --------------------------------------------------

// Repo — persistence. Get methods return (nil, nil) when no row matches;
// translating that into a NotFoundError is the service's job.
type Repo interface {
	ListWeddings(ctx context.Context) ([]Wedding, error)
	GetWedding(ctx context.Context, id int64) (*Wedding, error)
	FirstWedding(ctx context.Context) (*Wedding, error)
	CreateWedding(ctx context.Context, w *Wedding) error
	UpdateWedding(ctx context.Context, w *Wedding) error
	DeleteWedding(ctx context.Context, id int64) (bool, error)

	ListGuests(ctx context.Context, weddingID int64) ([]Guest, error)
	GetGuest(ctx context.Context, id int64) (*Guest, error)
	CreateGuest(ctx context.Context, g *Guest) error
	UpdateGuest(ctx context.Context, g *Guest) error
	DeleteGuest(ctx context.Context, id int64) (bool, error)

	ListTasks(ctx context.Context, weddingID int64) ([]Task, error)
	GetTask(ctx context.Context, id int64) (*Task, error)
	CreateTask(ctx context.Context, t *Task) error
	UpdateTask(ctx context.Context, t *Task) error
	DeleteTask(ctx context.Context, id int64) (bool, error)

	ListGuestbookEntries(ctx context.Context, weddingID int64) ([]GuestbookEntry, error)
	GetGuestbookEntry(ctx context.Context, id int64) (*GuestbookEntry, error)
	CreateGuestbookEntry(ctx context.Context, e *GuestbookEntry) error
	UpdateGuestbookEntry(ctx context.Context, e *GuestbookEntry) error
	DeleteGuestbookEntry(ctx context.Context, id int64) (bool, error)

	// WeddingData loads the wedding and all children ordered by ascending
	// created_at for the ask-context snapshot.
	WeddingData(ctx context.Context, weddingID int64) (*WeddingData, error)
}

// Service — orchestration: validation, default-wedding resolution and the
// ask flow, on top of Repo.
type Service interface {
	ListWeddings(ctx context.Context) ([]Wedding, error)
	GetWedding(ctx context.Context, id int64) (*Wedding, error)
	CreateWedding(ctx context.Context, p WeddingParams) (*Wedding, error)
	UpdateWedding(ctx context.Context, id int64, p WeddingParams) (*Wedding, error)
	DeleteWedding(ctx context.Context, id int64) error

	ListGuests(ctx context.Context, weddingID int64) ([]Guest, error)
	GetGuest(ctx context.Context, id int64) (*Guest, error)
	CreateGuest(ctx context.Context, p GuestParams) (*Guest, error)
	UpdateGuest(ctx context.Context, id int64, p GuestParams) (*Guest, error)
	DeleteGuest(ctx context.Context, id int64) error

	ListTasks(ctx context.Context, weddingID int64) ([]Task, error)
	GetTask(ctx context.Context, id int64) (*Task, error)
	CreateTask(ctx context.Context, p TaskParams) (*Task, error)
	UpdateTask(ctx context.Context, id int64, p TaskParams) (*Task, error)
	DeleteTask(ctx context.Context, id int64) error

	ListGuestbookEntries(ctx context.Context, weddingID int64) ([]GuestbookEntry, error)
	GetGuestbookEntry(ctx context.Context, id int64) (*GuestbookEntry, error)
	CreateGuestbookEntry(ctx context.Context, p GuestbookEntryParams) (*GuestbookEntry, error)
	UpdateGuestbookEntry(ctx context.Context, id int64, p GuestbookEntryParams) (*GuestbookEntry, error)
	DeleteGuestbookEntry(ctx context.Context, id int64) error

	Ask(ctx context.Context, weddingID int64, question string) (string, error)
}
