package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/internal/errs"
)

func TestSlideRepo_NextOrderIndex(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSlideRepo(db)

	// Presentation with slides
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(order_index\)\+1, 0\) FROM slides WHERE presentation_id=\$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(4))
	next, err := r.NextOrderIndex(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 4, next)

	// Empty presentation
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(order_index\)\+1, 0\) FROM slides WHERE presentation_id=\$1`).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(0))
	next, err = r.NextOrderIndex(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 0, next)
}

func TestSlideRepo_GetForOwner_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSlideRepo(db)

	mock.ExpectQuery(`FROM slides s\s+JOIN presentations p ON p.id = s.presentation_id\s+WHERE s.id=\$1 AND p.user_id=\$2`).
		WithArgs(int64(3), int64(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.GetForOwner(context.Background(), 3, 9)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSlideRepo_DeleteCascade_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSlideRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM elements WHERE slide_id=\$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`DELETE FROM slides WHERE id=\$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, r.DeleteCascade(context.Background(), 3))
}

func TestSlideRepo_DeleteCascade_MissingSlide(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewSlideRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM elements WHERE slide_id=\$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM slides WHERE id=\$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := r.DeleteCascade(context.Background(), 3)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
