package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/internal/errs"
)

func TestPresentationRepo_ListByOwner_ThumbnailDerivation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPresentationRepo(db)

	ts := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "user_id", "title", "template_id", "created_at", "updated_at", "count", "content"}).
		AddRow(int64(1), int64(9), "Deck A", (*int64)(nil), ts, ts, 3, `{"background":"#112233"}`).
		AddRow(int64(2), int64(9), "Deck B", (*int64)(nil), ts, ts, 0, ``)
	mock.ExpectQuery(`SELECT p.id, p.user_id, p.title, p.template_id, p.created_at, p.updated_at`).
		WithArgs(int64(9)).
		WillReturnRows(rows)

	out, err := r.ListByOwner(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "#112233", out[0].Thumbnail)
	require.Equal(t, 3, out[0].SlideCount)
	require.Equal(t, "#f3f4f6", out[1].Thumbnail)
}

func TestPresentationRepo_GetForOwner_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPresentationRepo(db)

	mock.ExpectQuery(`SELECT id, user_id, title, template_id, created_at, updated_at FROM presentations WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(1), int64(9)).
		WillReturnError(pgx.ErrNoRows)
	_, err := r.GetForOwner(context.Background(), 1, 9)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPresentationRepo_DeleteCascade_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPresentationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM presentations WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(1), int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(`DELETE FROM elements WHERE slide_id IN \(SELECT id FROM slides WHERE presentation_id=\$1\)`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectExec(`DELETE FROM slides WHERE presentation_id=\$1`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`DELETE FROM presentations WHERE id=\$1`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, r.DeleteCascade(context.Background(), 1, 9))
}

func TestPresentationRepo_DeleteCascade_NotOwner(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPresentationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM presentations WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(1), int64(9)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := r.DeleteCascade(context.Background(), 1, 9)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPresentationRepo_GetWithSlides(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPresentationRepo(db)

	ts := time.Now().UTC()
	mock.ExpectQuery(`SELECT id, user_id, title, template_id, created_at, updated_at FROM presentations WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(1), int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "title", "template_id", "created_at", "updated_at"}).
			AddRow(int64(1), int64(9), "Deck", (*int64)(nil), ts, ts))
	mock.ExpectQuery(`SELECT id, presentation_id, title, content, order_index, created_at, updated_at\s+FROM slides\s+WHERE presentation_id=\$1\s+ORDER BY order_index ASC, id ASC`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "presentation_id", "title", "content", "order_index", "created_at", "updated_at"}).
			AddRow(int64(10), int64(1), "Intro", `{"background":"#ffffff"}`, 0, ts, ts).
			AddRow(int64(11), int64(1), "Next", `{"background":"#ffffff"}`, 1, ts, ts))

	p, err := r.GetWithSlides(context.Background(), 1, 9)
	require.NoError(t, err)
	require.Len(t, p.Slides, 2)
	require.Equal(t, "Intro", p.Slides[0].Title)
}
