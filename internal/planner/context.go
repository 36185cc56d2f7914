package planner

import "github.com/everafter/wedding-planner/internal/ai"

// BuildAskContext projects an already-loaded wedding snapshot onto the
// whitelisted structure sent to the AI service. Pure transform: the repo is
// responsible for ordering children by ascending created_at.
func BuildAskContext(data *WeddingData) ai.Context {
	out := ai.Context{
		Wedding:          weddingContext(data.Wedding),
		Guests:           make([]ai.GuestContext, 0, len(data.Guests)),
		Tasks:            make([]ai.TaskContext, 0, len(data.Tasks)),
		GuestbookEntries: make([]ai.GuestbookEntryContext, 0, len(data.GuestbookEntries)),
	}

	for _, g := range data.Guests {
		out.Guests = append(out.Guests, ai.GuestContext{
			ID:           g.ID,
			Name:         g.Name,
			Email:        g.Email,
			Phone:        g.Phone,
			PlusOneCount: g.PlusOneCount,
			DietaryNotes: g.DietaryNotes,
		})
	}
	for _, t := range data.Tasks {
		out.Tasks = append(out.Tasks, ai.TaskContext{
			ID:       t.ID,
			Title:    t.Title,
			Status:   t.Status.String(),
			Priority: t.Priority.String(),
		})
	}
	for _, e := range data.GuestbookEntries {
		out.GuestbookEntries = append(out.GuestbookEntries, ai.GuestbookEntryContext{
			ID:        e.ID,
			GuestName: e.GuestName,
			Message:   e.Message,
			IsPublic:  e.IsPublic,
		})
	}
	return out
}

func weddingContext(w Wedding) ai.WeddingContext {
	var date *string
	if !w.Date.IsZero() {
		s := w.Date.String()
		date = &s
	}
	return ai.WeddingContext{
		ID:        w.ID,
		Name:      w.Name,
		Date:      date,
		VenueName: w.VenueName,
	}
}
