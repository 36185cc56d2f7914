package planner

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/everafter/wedding-planner/internal/ai"
)

// Seeded fallback used when a child record is created without a wedding_id
// and no wedding exists yet.
const (
	defaultWeddingName     = "Alex & Jordan Wedding"
	defaultWeddingVenue    = "Rose Garden Estate"
	defaultWeddingLeadDays = 90
)

type service struct {
	repo Repo
	ai   ai.AI
}

func NewService(repo Repo, aiClient ai.AI) Service {
	return &service{
		repo: repo,
		ai:   aiClient,
	}
}

// --------------------------------------------------
// WEDDINGS
// --------------------------------------------------

func (s *service) ListWeddings(ctx context.Context) ([]Wedding, error) {
	return s.repo.ListWeddings(ctx)
}

func (s *service) GetWedding(ctx context.Context, id int64) (*Wedding, error) {
	w, err := s.repo.GetWedding(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, &NotFoundError{Resource: "Wedding", ID: id}
	}
	return w, nil
}

func (s *service) CreateWedding(ctx context.Context, p WeddingParams) (*Wedding, error) {
	w := &Wedding{}
	applyWeddingParams(w, p)
	if err := validateWedding(w); err != nil {
		return nil, err
	}
	if err := s.repo.CreateWedding(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) UpdateWedding(ctx context.Context, id int64, p WeddingParams) (*Wedding, error) {
	w, err := s.GetWedding(ctx, id)
	if err != nil {
		return nil, err
	}
	applyWeddingParams(w, p)
	if err := validateWedding(w); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateWedding(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) DeleteWedding(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteWedding(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Resource: "Wedding", ID: id}
	}
	return nil
}

func applyWeddingParams(w *Wedding, p WeddingParams) {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Date != nil {
		w.Date = *p.Date
	}
	if p.VenueName != nil {
		w.VenueName = *p.VenueName
	}
}

func validateWedding(w *Wedding) error {
	errs := fieldErrors{}
	if strings.TrimSpace(w.Name) == "" {
		errs.add("name", blankMessage)
	}
	if w.Date.IsZero() {
		errs.add("date", blankMessage)
	}
	if strings.TrimSpace(w.VenueName) == "" {
		errs.add("venue_name", blankMessage)
	}
	return errs.err()
}

// resolveWedding returns the wedding for an explicit id, or falls back to the
// first existing wedding, creating the seeded default when the table is
// empty. Repeated calls without an id resolve the same wedding.
func (s *service) resolveWedding(ctx context.Context, weddingID *int64) (*Wedding, error) {
	if weddingID != nil && *weddingID != 0 {
		return s.GetWedding(ctx, *weddingID)
	}

	w, err := s.repo.FirstWedding(ctx)
	if err != nil {
		return nil, err
	}
	if w != nil {
		return w, nil
	}

	w = &Wedding{
		Name:      defaultWeddingName,
		Date:      NewDate(time.Now().AddDate(0, 0, defaultWeddingLeadDays)),
		VenueName: defaultWeddingVenue,
	}
	if err := s.repo.CreateWedding(ctx, w); err != nil {
		return nil, err
	}
	log.Info().Int64("wedding_id", w.ID).Msg("created default wedding")
	return w, nil
}

// --------------------------------------------------
// GUESTS
// --------------------------------------------------

func (s *service) ListGuests(ctx context.Context, weddingID int64) ([]Guest, error) {
	return s.repo.ListGuests(ctx, weddingID)
}

func (s *service) GetGuest(ctx context.Context, id int64) (*Guest, error) {
	g, err := s.repo.GetGuest(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, &NotFoundError{Resource: "Guest", ID: id}
	}
	return g, nil
}

func (s *service) CreateGuest(ctx context.Context, p GuestParams) (*Guest, error) {
	wedding, err := s.resolveWedding(ctx, p.WeddingID)
	if err != nil {
		return nil, err
	}

	g := &Guest{WeddingID: wedding.ID}
	applyGuestParams(g, p)
	if err := validateGuest(g); err != nil {
		return nil, err
	}
	if err := s.repo.CreateGuest(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) UpdateGuest(ctx context.Context, id int64, p GuestParams) (*Guest, error) {
	g, err := s.GetGuest(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.WeddingID != nil && *p.WeddingID != 0 {
		wedding, err := s.resolveWedding(ctx, p.WeddingID)
		if err != nil {
			return nil, err
		}
		g.WeddingID = wedding.ID
	}
	applyGuestParams(g, p)
	if err := validateGuest(g); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateGuest(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) DeleteGuest(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteGuest(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Resource: "Guest", ID: id}
	}
	return nil
}

func applyGuestParams(g *Guest, p GuestParams) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Email != nil {
		g.Email = p.Email
	}
	if p.Phone != nil {
		g.Phone = p.Phone
	}
	if p.PlusOneCount != nil {
		g.PlusOneCount = *p.PlusOneCount
	}
	if p.DietaryNotes != nil {
		g.DietaryNotes = p.DietaryNotes
	}
}

func validateGuest(g *Guest) error {
	errs := fieldErrors{}
	if strings.TrimSpace(g.Name) == "" {
		errs.add("name", blankMessage)
	}
	if g.PlusOneCount < 0 {
		errs.add("plus_one_count", "must be greater than or equal to 0")
	}
	return errs.err()
}

// --------------------------------------------------
// TASKS
// --------------------------------------------------

func (s *service) ListTasks(ctx context.Context, weddingID int64) ([]Task, error) {
	return s.repo.ListTasks(ctx, weddingID)
}

func (s *service) GetTask(ctx context.Context, id int64) (*Task, error) {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &NotFoundError{Resource: "Task", ID: id}
	}
	return t, nil
}

func (s *service) CreateTask(ctx context.Context, p TaskParams) (*Task, error) {
	wedding, err := s.resolveWedding(ctx, p.WeddingID)
	if err != nil {
		return nil, err
	}

	t := &Task{
		WeddingID: wedding.ID,
		Status:    StatusPending,
		Priority:  PriorityMedium,
	}
	applyTaskParams(t, p)
	if err := validateTask(t); err != nil {
		return nil, err
	}
	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) UpdateTask(ctx context.Context, id int64, p TaskParams) (*Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.WeddingID != nil && *p.WeddingID != 0 {
		wedding, err := s.resolveWedding(ctx, p.WeddingID)
		if err != nil {
			return nil, err
		}
		t.WeddingID = wedding.ID
	}
	applyTaskParams(t, p)
	if err := validateTask(t); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) DeleteTask(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteTask(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Resource: "Task", ID: id}
	}
	return nil
}

func applyTaskParams(t *Task, p TaskParams) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
}

func validateTask(t *Task) error {
	errs := fieldErrors{}
	if strings.TrimSpace(t.Title) == "" {
		errs.add("title", blankMessage)
	}
	if !t.Status.Valid() {
		errs.add("status", "is not a valid status")
	}
	if !t.Priority.Valid() {
		errs.add("priority", "is not a valid priority")
	}
	return errs.err()
}

// --------------------------------------------------
// GUESTBOOK ENTRIES
// --------------------------------------------------

func (s *service) ListGuestbookEntries(ctx context.Context, weddingID int64) ([]GuestbookEntry, error) {
	return s.repo.ListGuestbookEntries(ctx, weddingID)
}

func (s *service) GetGuestbookEntry(ctx context.Context, id int64) (*GuestbookEntry, error) {
	e, err := s.repo.GetGuestbookEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, &NotFoundError{Resource: "GuestbookEntry", ID: id}
	}
	return e, nil
}

func (s *service) CreateGuestbookEntry(ctx context.Context, p GuestbookEntryParams) (*GuestbookEntry, error) {
	wedding, err := s.resolveWedding(ctx, p.WeddingID)
	if err != nil {
		return nil, err
	}

	e := &GuestbookEntry{WeddingID: wedding.ID, IsPublic: true}
	applyGuestbookEntryParams(e, p)
	if err := validateGuestbookEntry(e); err != nil {
		return nil, err
	}
	if err := s.repo.CreateGuestbookEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) UpdateGuestbookEntry(ctx context.Context, id int64, p GuestbookEntryParams) (*GuestbookEntry, error) {
	e, err := s.GetGuestbookEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.WeddingID != nil && *p.WeddingID != 0 {
		wedding, err := s.resolveWedding(ctx, p.WeddingID)
		if err != nil {
			return nil, err
		}
		e.WeddingID = wedding.ID
	}
	applyGuestbookEntryParams(e, p)
	if err := validateGuestbookEntry(e); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateGuestbookEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) DeleteGuestbookEntry(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteGuestbookEntry(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Resource: "GuestbookEntry", ID: id}
	}
	return nil
}

func applyGuestbookEntryParams(e *GuestbookEntry, p GuestbookEntryParams) {
	if p.GuestName != nil {
		e.GuestName = *p.GuestName
	}
	if p.Message != nil {
		e.Message = *p.Message
	}
	if p.IsPublic != nil {
		e.IsPublic = *p.IsPublic
	}
}

func validateGuestbookEntry(e *GuestbookEntry) error {
	errs := fieldErrors{}
	if strings.TrimSpace(e.GuestName) == "" {
		errs.add("guest_name", blankMessage)
	}
	if strings.TrimSpace(e.Message) == "" {
		errs.add("message", blankMessage)
	}
	return errs.err()
}

// --------------------------------------------------
// ASK
// --------------------------------------------------

func (s *service) Ask(ctx context.Context, weddingID int64, question string) (string, error) {
	if _, err := s.GetWedding(ctx, weddingID); err != nil {
		return "", err
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrBlankQuestion
	}

	data, err := s.repo.WeddingData(ctx, weddingID)
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", &NotFoundError{Resource: "Wedding", ID: weddingID}
	}

	log.Info().
		Int64("wedding_id", weddingID).
		Str("question", question).
		Msg("forwarding question to AI service")

	return s.ai.Ask(ctx, question, BuildAskContext(data))
}

// --------------------------------------------------
// VALIDATION PLUMBING
// --------------------------------------------------

const blankMessage = "can't be blank"

type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Errors: f}
}
