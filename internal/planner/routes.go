package planner

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/up", h.Health)

	r.Route("/weddings", func(r chi.Router) {
		r.Get("/", h.ListWeddings)
		r.Post("/", h.CreateWedding)
		r.Get("/{id}", h.GetWedding)
		r.Patch("/{id}", h.UpdateWedding)
		r.Put("/{id}", h.UpdateWedding)
		r.Delete("/{id}", h.DeleteWedding)

		r.Post("/{id}/ask", h.Ask)
		r.Get("/{id}/guestbook_entries", h.ListWeddingGuestbookEntries)
	})

	r.Route("/guests", func(r chi.Router) {
		r.Get("/", h.ListGuests)
		r.Post("/", h.CreateGuest)
		r.Get("/{id}", h.GetGuest)
		r.Patch("/{id}", h.UpdateGuest)
		r.Put("/{id}", h.UpdateGuest)
		r.Delete("/{id}", h.DeleteGuest)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/{id}", h.GetTask)
		r.Patch("/{id}", h.UpdateTask)
		r.Put("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
	})

	r.Route("/guestbook_entries", func(r chi.Router) {
		r.Get("/", h.ListGuestbookEntries)
		r.Post("/", h.CreateGuestbookEntry)
		r.Get("/{id}", h.GetGuestbookEntry)
		r.Patch("/{id}", h.UpdateGuestbookEntry)
		r.Put("/{id}", h.UpdateGuestbookEntry)
		r.Delete("/{id}", h.DeleteGuestbookEntry)
	})
}
