package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/internal/errs"
)

func TestTemplateRepo_CloneSample_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTemplateRepo(db)

	templateID, userID := int64(2), int64(9)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM presentations\s+WHERE template_id=\$1 AND title LIKE '%Sample%'\s+ORDER BY id ASC LIMIT 1`).
		WithArgs(templateID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(50)))
	mock.ExpectQuery(`INSERT INTO presentations \(user_id, title, template_id\)\s+VALUES \(\$1, \$2, \$3\)\s+RETURNING id`).
		WithArgs(userID, "My Deck", templateID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(77)))
	mock.ExpectQuery(`SELECT id, title, content, order_index FROM slides\s+WHERE presentation_id=\$1\s+ORDER BY order_index ASC, id ASC`).
		WithArgs(int64(50)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "content", "order_index"}).
			AddRow(int64(501), "Cover", `{"background":"#0f172a"}`, 0).
			AddRow(int64(502), "Agenda", `{"background":"#ffffff"}`, 1))
	mock.ExpectQuery(`INSERT INTO slides \(presentation_id, title, content, order_index\)\s+VALUES \(\$1, \$2, \$3, \$4\)\s+RETURNING id`).
		WithArgs(int64(77), "Cover", `{"background":"#0f172a"}`, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(601)))
	mock.ExpectExec(`INSERT INTO elements \(slide_id, type, x, y, width, height, z_index, rotation, data\)\s+SELECT \$2, type, x, y, width, height, z_index, rotation, data\s+FROM elements WHERE slide_id=\$1`).
		WithArgs(int64(501), int64(601)).
		WillReturnResult(pgxmock.NewResult("INSERT", 3))
	mock.ExpectQuery(`INSERT INTO slides \(presentation_id, title, content, order_index\)\s+VALUES \(\$1, \$2, \$3, \$4\)\s+RETURNING id`).
		WithArgs(int64(77), "Agenda", `{"background":"#ffffff"}`, 1).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(602)))
	mock.ExpectExec(`INSERT INTO elements \(slide_id, type, x, y, width, height, z_index, rotation, data\)\s+SELECT \$2, type`).
		WithArgs(int64(502), int64(602)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	newID, err := r.CloneSample(context.Background(), templateID, userID, "My Deck")
	require.NoError(t, err)
	require.Equal(t, int64(77), newID)
}

func TestTemplateRepo_CloneSample_NoSample(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTemplateRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM presentations\s+WHERE template_id=\$1 AND title LIKE '%Sample%'`).
		WithArgs(int64(2)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := r.CloneSample(context.Background(), 2, 9, "My Deck")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTemplateRepo_Get_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTemplateRepo(db)

	mock.ExpectQuery(`SELECT id, name, category, thumbnail, data, created_at FROM templates WHERE id=\$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)
	_, err := r.Get(context.Background(), 99)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
