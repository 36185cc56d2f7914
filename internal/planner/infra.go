package planner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var (
	weddingColumns = []string{"id", "name", "date", "venue_name", "created_at", "updated_at"}
	guestColumns   = []string{"id", "wedding_id", "name", "email", "phone", "plus_one_count", "dietary_notes", "created_at", "updated_at"}
	taskColumns    = []string{"id", "wedding_id", "title", "status", "priority", "created_at", "updated_at"}
	entryColumns   = []string{"id", "wedding_id", "guest_name", "message", "is_public", "created_at", "updated_at"}
)

type repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) Repo {
	return &repo{db: db}
}

// --------------------------------------------------
// WEDDINGS
// --------------------------------------------------

func (r *repo) ListWeddings(ctx context.Context) ([]Wedding, error) {
	query, args, err := psql.Select(weddingColumns...).
		From("weddings").
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	out := []Wedding{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list weddings: %w", err)
	}
	return out, nil
}

func (r *repo) GetWedding(ctx context.Context, id int64) (*Wedding, error) {
	query, args, err := psql.Select(weddingColumns...).
		From("weddings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var w Wedding
	if err := r.db.GetContext(ctx, &w, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wedding: %w", err)
	}
	return &w, nil
}

func (r *repo) FirstWedding(ctx context.Context) (*Wedding, error) {
	query, args, err := psql.Select(weddingColumns...).
		From("weddings").
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var w Wedding
	if err := r.db.GetContext(ctx, &w, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("first wedding: %w", err)
	}
	return &w, nil
}

func (r *repo) CreateWedding(ctx context.Context, w *Wedding) error {
	query, args, err := psql.Insert("weddings").
		Columns("name", "date", "venue_name").
		Values(w.Name, w.Date, w.VenueName).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return fmt.Errorf("create wedding: %w", err)
	}
	return nil
}

func (r *repo) UpdateWedding(ctx context.Context, w *Wedding) error {
	query, args, err := psql.Update("weddings").
		Set("name", w.Name).
		Set("date", w.Date).
		Set("venue_name", w.VenueName).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": w.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&w.UpdatedAt); err != nil {
		return fmt.Errorf("update wedding: %w", err)
	}
	return nil
}

func (r *repo) DeleteWedding(ctx context.Context, id int64) (bool, error) {
	return r.deleteFrom(ctx, "weddings", id)
}

// --------------------------------------------------
// GUESTS
// --------------------------------------------------

func (r *repo) ListGuests(ctx context.Context, weddingID int64) ([]Guest, error) {
	builder := psql.Select(guestColumns...).
		From("guests").
		OrderBy("created_at DESC")
	if weddingID != 0 {
		builder = builder.Where(squirrel.Eq{"wedding_id": weddingID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	out := []Guest{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return out, nil
}

func (r *repo) GetGuest(ctx context.Context, id int64) (*Guest, error) {
	query, args, err := psql.Select(guestColumns...).
		From("guests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var g Guest
	if err := r.db.GetContext(ctx, &g, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	return &g, nil
}

func (r *repo) CreateGuest(ctx context.Context, g *Guest) error {
	query, args, err := psql.Insert("guests").
		Columns("wedding_id", "name", "email", "phone", "plus_one_count", "dietary_notes").
		Values(g.WeddingID, g.Name, g.Email, g.Phone, g.PlusOneCount, g.DietaryNotes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return fmt.Errorf("create guest: %w", err)
	}
	return nil
}

func (r *repo) UpdateGuest(ctx context.Context, g *Guest) error {
	query, args, err := psql.Update("guests").
		Set("wedding_id", g.WeddingID).
		Set("name", g.Name).
		Set("email", g.Email).
		Set("phone", g.Phone).
		Set("plus_one_count", g.PlusOneCount).
		Set("dietary_notes", g.DietaryNotes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": g.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&g.UpdatedAt); err != nil {
		return fmt.Errorf("update guest: %w", err)
	}
	return nil
}

func (r *repo) DeleteGuest(ctx context.Context, id int64) (bool, error) {
	return r.deleteFrom(ctx, "guests", id)
}

// --------------------------------------------------
// TASKS
// --------------------------------------------------

func (r *repo) ListTasks(ctx context.Context, weddingID int64) ([]Task, error) {
	builder := psql.Select(taskColumns...).
		From("tasks").
		OrderBy("created_at DESC")
	if weddingID != 0 {
		builder = builder.Where(squirrel.Eq{"wedding_id": weddingID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	out := []Task{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (r *repo) GetTask(ctx context.Context, id int64) (*Task, error) {
	query, args, err := psql.Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var t Task
	if err := r.db.GetContext(ctx, &t, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

func (r *repo) CreateTask(ctx context.Context, t *Task) error {
	query, args, err := psql.Insert("tasks").
		Columns("wedding_id", "title", "status", "priority").
		Values(t.WeddingID, t.Title, int(t.Status), int(t.Priority)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *repo) UpdateTask(ctx context.Context, t *Task) error {
	query, args, err := psql.Update("tasks").
		Set("wedding_id", t.WeddingID).
		Set("title", t.Title).
		Set("status", int(t.Status)).
		Set("priority", int(t.Priority)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&t.UpdatedAt); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *repo) DeleteTask(ctx context.Context, id int64) (bool, error) {
	return r.deleteFrom(ctx, "tasks", id)
}

// --------------------------------------------------
// GUESTBOOK ENTRIES
// --------------------------------------------------

func (r *repo) ListGuestbookEntries(ctx context.Context, weddingID int64) ([]GuestbookEntry, error) {
	builder := psql.Select(entryColumns...).
		From("guestbook_entries").
		OrderBy("created_at DESC")
	if weddingID != 0 {
		builder = builder.Where(squirrel.Eq{"wedding_id": weddingID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	out := []GuestbookEntry{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list guestbook entries: %w", err)
	}
	return out, nil
}

func (r *repo) GetGuestbookEntry(ctx context.Context, id int64) (*GuestbookEntry, error) {
	query, args, err := psql.Select(entryColumns...).
		From("guestbook_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var e GuestbookEntry
	if err := r.db.GetContext(ctx, &e, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get guestbook entry: %w", err)
	}
	return &e, nil
}

func (r *repo) CreateGuestbookEntry(ctx context.Context, e *GuestbookEntry) error {
	query, args, err := psql.Insert("guestbook_entries").
		Columns("wedding_id", "guest_name", "message", "is_public").
		Values(e.WeddingID, e.GuestName, e.Message, e.IsPublic).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("create guestbook entry: %w", err)
	}
	return nil
}

func (r *repo) UpdateGuestbookEntry(ctx context.Context, e *GuestbookEntry) error {
	query, args, err := psql.Update("guestbook_entries").
		Set("wedding_id", e.WeddingID).
		Set("guest_name", e.GuestName).
		Set("message", e.Message).
		Set("is_public", e.IsPublic).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": e.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&e.UpdatedAt); err != nil {
		return fmt.Errorf("update guestbook entry: %w", err)
	}
	return nil
}

func (r *repo) DeleteGuestbookEntry(ctx context.Context, id int64) (bool, error) {
	return r.deleteFrom(ctx, "guestbook_entries", id)
}

// --------------------------------------------------
// ASK SNAPSHOT
// --------------------------------------------------

func (r *repo) WeddingData(ctx context.Context, weddingID int64) (*WeddingData, error) {
	w, err := r.GetWedding(ctx, weddingID)
	if err != nil || w == nil {
		return nil, err
	}

	data := &WeddingData{
		Wedding:          *w,
		Guests:           []Guest{},
		Tasks:            []Task{},
		GuestbookEntries: []GuestbookEntry{},
	}

	if err := r.selectChildren(ctx, &data.Guests, guestColumns, "guests", weddingID); err != nil {
		return nil, err
	}
	if err := r.selectChildren(ctx, &data.Tasks, taskColumns, "tasks", weddingID); err != nil {
		return nil, err
	}
	if err := r.selectChildren(ctx, &data.GuestbookEntries, entryColumns, "guestbook_entries", weddingID); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *repo) selectChildren(ctx context.Context, dest any, columns []string, table string, weddingID int64) error {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"wedding_id": weddingID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	return nil
}

// --------------------------------------------------
// SHARED HELPERS
// --------------------------------------------------

func (r *repo) deleteFrom(ctx context.Context, table string, id int64) (bool, error) {
	query, args, err := psql.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
