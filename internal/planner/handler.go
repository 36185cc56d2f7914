package planner

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/everafter/wedding-planner/internal/ai"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// --------------------------------------------------
// HEALTH
// --------------------------------------------------

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --------------------------------------------------
// ASK
// --------------------------------------------------

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Wedding")
	if err != nil {
		respondError(w, err)
		return
	}

	var payload struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json"})
		return
	}

	answer, err := h.svc.Ask(r.Context(), id, payload.Question)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// --------------------------------------------------
// WEDDINGS
// --------------------------------------------------

func (h *Handler) ListWeddings(w http.ResponseWriter, r *http.Request) {
	weddings, err := h.svc.ListWeddings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]weddingResponse, 0, len(weddings))
	for i := range weddings {
		out = append(out, newWeddingResponse(&weddings[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetWedding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Wedding")
	if err != nil {
		respondError(w, err)
		return
	}
	wedding, err := h.svc.GetWedding(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newWeddingResponse(wedding))
}

func (h *Handler) CreateWedding(w http.ResponseWriter, r *http.Request) {
	var p WeddingParams
	if !decodeBody(w, r, &p) {
		return
	}
	wedding, err := h.svc.CreateWedding(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newWeddingResponse(wedding))
}

func (h *Handler) UpdateWedding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Wedding")
	if err != nil {
		respondError(w, err)
		return
	}
	var p WeddingParams
	if !decodeBody(w, r, &p) {
		return
	}
	wedding, err := h.svc.UpdateWedding(r.Context(), id, p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newWeddingResponse(wedding))
}

func (h *Handler) DeleteWedding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Wedding")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.svc.DeleteWedding(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --------------------------------------------------
// GUESTS
// --------------------------------------------------

func (h *Handler) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.svc.ListGuests(r.Context(), weddingFilter(r))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]guestResponse, 0, len(guests))
	for i := range guests {
		out = append(out, newGuestResponse(&guests[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetGuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Guest")
	if err != nil {
		respondError(w, err)
		return
	}
	guest, err := h.svc.GetGuest(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newGuestResponse(guest))
}

func (h *Handler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var p GuestParams
	if !decodeBody(w, r, &p) {
		return
	}
	guest, err := h.svc.CreateGuest(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newGuestResponse(guest))
}

func (h *Handler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Guest")
	if err != nil {
		respondError(w, err)
		return
	}
	var p GuestParams
	if !decodeBody(w, r, &p) {
		return
	}
	guest, err := h.svc.UpdateGuest(r.Context(), id, p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newGuestResponse(guest))
}

func (h *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Guest")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.svc.DeleteGuest(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --------------------------------------------------
// TASKS
// --------------------------------------------------

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.ListTasks(r.Context(), weddingFilter(r))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, newTaskResponse(&tasks[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Task")
	if err != nil {
		respondError(w, err)
		return
	}
	task, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTaskResponse(task))
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var p TaskParams
	if !decodeBody(w, r, &p) {
		return
	}
	task, err := h.svc.CreateTask(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newTaskResponse(task))
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Task")
	if err != nil {
		respondError(w, err)
		return
	}
	var p TaskParams
	if !decodeBody(w, r, &p) {
		return
	}
	task, err := h.svc.UpdateTask(r.Context(), id, p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTaskResponse(task))
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Task")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --------------------------------------------------
// GUESTBOOK ENTRIES
// --------------------------------------------------

func (h *Handler) ListGuestbookEntries(w http.ResponseWriter, r *http.Request) {
	h.renderGuestbookEntries(w, r, weddingFilter(r))
}

// ListWeddingGuestbookEntries serves the nested alias route; the path id acts
// as the wedding_id filter.
func (h *Handler) ListWeddingGuestbookEntries(w http.ResponseWriter, r *http.Request) {
	weddingID, err := pathID(r, "Wedding")
	if err != nil {
		// non-numeric filter matches nothing rather than 404ing
		weddingID = -1
	}
	h.renderGuestbookEntries(w, r, weddingID)
}

func (h *Handler) renderGuestbookEntries(w http.ResponseWriter, r *http.Request, weddingID int64) {
	entries, err := h.svc.ListGuestbookEntries(r.Context(), weddingID)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]guestbookEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, newGuestbookEntryResponse(&entries[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetGuestbookEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "GuestbookEntry")
	if err != nil {
		respondError(w, err)
		return
	}
	entry, err := h.svc.GetGuestbookEntry(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newGuestbookEntryResponse(entry))
}

func (h *Handler) CreateGuestbookEntry(w http.ResponseWriter, r *http.Request) {
	var p GuestbookEntryParams
	if !decodeBody(w, r, &p) {
		return
	}
	entry, err := h.svc.CreateGuestbookEntry(r.Context(), p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newGuestbookEntryResponse(entry))
}

func (h *Handler) UpdateGuestbookEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "GuestbookEntry")
	if err != nil {
		respondError(w, err)
		return
	}
	var p GuestbookEntryParams
	if !decodeBody(w, r, &p) {
		return
	}
	entry, err := h.svc.UpdateGuestbookEntry(r.Context(), id, p)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newGuestbookEntryResponse(entry))
}

func (h *Handler) DeleteGuestbookEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "GuestbookEntry")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.svc.DeleteGuestbookEntry(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --------------------------------------------------
// RESPONSE SHAPES
// --------------------------------------------------

type weddingResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Date      Date      `json:"date"`
	VenueName string    `json:"venue_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newWeddingResponse(w *Wedding) weddingResponse {
	return weddingResponse{
		ID:        w.ID,
		Name:      w.Name,
		Date:      w.Date,
		VenueName: w.VenueName,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

type guestResponse struct {
	ID           int64     `json:"id"`
	WeddingID    int64     `json:"wedding_id"`
	Name         string    `json:"name"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	PlusOneCount int       `json:"plus_one_count"`
	DietaryNotes *string   `json:"dietary_notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newGuestResponse(g *Guest) guestResponse {
	return guestResponse{
		ID:           g.ID,
		WeddingID:    g.WeddingID,
		Name:         g.Name,
		Email:        g.Email,
		Phone:        g.Phone,
		PlusOneCount: g.PlusOneCount,
		DietaryNotes: g.DietaryNotes,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

type taskResponse struct {
	ID            int64        `json:"id"`
	WeddingID     int64        `json:"wedding_id"`
	Title         string       `json:"title"`
	Status        TaskStatus   `json:"status"`
	StatusValue   int          `json:"status_value"`
	Priority      TaskPriority `json:"priority"`
	PriorityValue int          `json:"priority_value"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func newTaskResponse(t *Task) taskResponse {
	return taskResponse{
		ID:            t.ID,
		WeddingID:     t.WeddingID,
		Title:         t.Title,
		Status:        t.Status,
		StatusValue:   int(t.Status),
		Priority:      t.Priority,
		PriorityValue: int(t.Priority),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

type guestbookEntryResponse struct {
	ID        int64     `json:"id"`
	WeddingID int64     `json:"wedding_id"`
	GuestName string    `json:"guest_name"`
	Message   string    `json:"message"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newGuestbookEntryResponse(e *GuestbookEntry) guestbookEntryResponse {
	return guestbookEntryResponse{
		ID:        e.ID,
		WeddingID: e.WeddingID,
		GuestName: e.GuestName,
		Message:   e.Message,
		IsPublic:  e.IsPublic,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// --------------------------------------------------
// HTTP PLUMBING
// --------------------------------------------------

type errorBody struct {
	Error string `json:"error"`
}

type errorsBody struct {
	Errors map[string][]string `json:"errors"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func respondError(w http.ResponseWriter, err error) {
	var notFound *NotFoundError
	var validation *ValidationError
	var request *ai.RequestError

	switch {
	case errors.As(err, &notFound):
		respondJSON(w, http.StatusNotFound, errorBody{Error: notFound.Error()})
	case errors.As(err, &validation):
		respondJSON(w, http.StatusUnprocessableEntity, errorsBody{Errors: validation.Errors})
	case errors.Is(err, ErrBlankQuestion):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: ErrBlankQuestion.Error()})
	case errors.As(err, &request):
		respondJSON(w, http.StatusBadGateway, errorBody{Error: request.Error()})
	default:
		log.Error().Err(err).Msg("request failed")
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json"})
		return false
	}
	return true
}

// pathID parses the {id} segment. Non-numeric ids behave like missing
// records, keeping the message's raw value.
func pathID(r *http.Request, resource string) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &NotFoundError{Resource: resource, ID: raw}
	}
	return id, nil
}

// weddingFilter reads the optional wedding_id query filter. Blank means no
// filter; a non-numeric value matches no rows.
func weddingFilter(r *http.Request) int64 {
	raw := strings.TrimSpace(r.URL.Query().Get("wedding_id"))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return -1
	}
	return id
}
