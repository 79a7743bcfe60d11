package repository_test

import (
	"context"
	"errors"
	"regexp"
	"shareit/infras/otel/mocks"
	"shareit/infras/postgres"
	"shareit/shared/dto"
	"shareit/shared/repository"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Stamp struct {
	CreatedBy string `db:"created_by"`
}

type note struct {
	ID         string `db:"id"`
	Body       string `db:"body"`
	AuthorName string `column:"name" db:"author_name" table:"authors"`
	Stamp
}

func (note) JoinClause() string {
	return "JOIN authors ON authors.id = notes.author_id"
}

const selectNotes = "SELECT notes.id, notes.body, authors.name AS author_name, notes.created_by " +
	"FROM notes JOIN authors ON authors.id = notes.author_id"

var noteColumns = []string{"id", "body", "author_name", "created_by"}

func newNotes(t *testing.T) (repository.Repository[note], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	conn := sqlx.NewDb(db, "postgres")
	table := repository.Table{Entity: "note", Name: "notes", Key: "id"}

	return repository.New[note](table, &postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func byID(id string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []dto.Clause{dto.Filter{Field: "id", Operator: dto.FilterOperatorEq, Value: id, Table: "notes"}},
	}
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newNotes(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notes (id, body, created_by) VALUES ($1, $2, $3)")).
		WithArgs("n1", "hello", "ann").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), note{ID: "n1", Body: "hello", AuthorName: "ignored", Stamp: Stamp{CreatedBy: "ann"}})

	require.NoError(t, err)
}

func TestRepository_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newNotes(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectNotes + " WHERE (notes.id = $1) LIMIT 1")).
			WithArgs("n1").
			WillReturnRows(sqlmock.NewRows(noteColumns).AddRow("n1", "hello", "ann", "ann"))

		got, err := repo.Get(context.Background(), byID("n1"))

		require.NoError(t, err)
		assert.Equal(t, note{ID: "n1", Body: "hello", AuthorName: "ann", Stamp: Stamp{CreatedBy: "ann"}}, got)
	})

	t.Run("missing row is the zero value", func(t *testing.T) {
		repo, mock := newNotes(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectNotes)).
			WithArgs("n2").
			WillReturnRows(sqlmock.NewRows(noteColumns))

		got, err := repo.Get(context.Background(), byID("n2"))

		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("driver failure", func(t *testing.T) {
		repo, mock := newNotes(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectNotes)).WillReturnError(errors.New("connection reset"))

		_, err := repo.Get(context.Background(), byID("n3"))

		require.ErrorContains(t, err, "failed to get note")
	})
}

func TestRepository_GetAll(t *testing.T) {
	t.Run("sorted page", func(t *testing.T) {
		repo, mock := newNotes(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectNotes + " ORDER BY notes.body DESC, notes.id DESC LIMIT $1 OFFSET $2")).
			WithArgs(10, 20).
			WillReturnRows(sqlmock.NewRows(noteColumns).
				AddRow("n2", "b", "ann", "ann").
				AddRow("n1", "a", "bob", "bob"))

		params := dto.QueryParams{Page: 3, Limit: 10, SortBy: "notes.body", SortDir: dto.SortDirDesc}
		got, err := repo.GetAll(context.Background(), params, dto.FilterGroup{})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "n2", got[0].ID)
	})

	t.Run("unbounded without rows", func(t *testing.T) {
		repo, mock := newNotes(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectNotes + " WHERE (notes.id = $1)")).
			WithArgs("n9").
			WillReturnRows(sqlmock.NewRows(noteColumns))

		got, err := repo.GetAll(context.Background(), dto.QueryParams{}, byID("n9"))

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestRepository_Exist(t *testing.T) {
	t.Run("requires a filter", func(t *testing.T) {
		repo, _ := newNotes(t)

		_, err := repo.Exist(context.Background(), dto.FilterGroup{})

		require.Error(t, err)
	})

	t.Run("match", func(t *testing.T) {
		repo, mock := newNotes(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM notes JOIN authors ON authors.id = notes.author_id WHERE (notes.id = $1))")).
			WithArgs("n1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exist, err := repo.Exist(context.Background(), byID("n1"))

		require.NoError(t, err)
		assert.True(t, exist)
	})
}

func TestRepository_Update(t *testing.T) {
	t.Run("requires a filter", func(t *testing.T) {
		repo, _ := newNotes(t)

		_, err := repo.Update(context.Background(), map[string]any{"body": "x"}, dto.FilterGroup{})

		require.Error(t, err)
	})

	t.Run("reports affected rows", func(t *testing.T) {
		repo, mock := newNotes(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE notes SET body = $1, created_by = $2 WHERE (notes.id = $3)")).
			WithArgs("edited", "bob", "n1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		affected, err := repo.Update(context.Background(), map[string]any{"created_by": "bob", "body": "edited"}, byID("n1"))

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("driver failure", func(t *testing.T) {
		repo, mock := newNotes(t)

		mock.ExpectExec("UPDATE notes").WillReturnError(errors.New("deadlock detected"))

		_, err := repo.Update(context.Background(), map[string]any{"body": "x"}, byID("n1"))

		require.ErrorContains(t, err, "failed to update note")
	})
}
