package mysql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

var commentColumns = []string{"id", "discussion_id", "poster_id", "text", "text_markup", "soft_deleted", "first_comment", "created_at", "updated_at"}

func TestCommentRepository_GetByID(t *testing.T) {
	query := regexp.QuoteMeta("SELECT * FROM `comments` WHERE id = ?")
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		text := faker.Sentence()
		mock.ExpectQuery(query).
			WillReturnRows(sqlmock.NewRows(commentColumns).
				AddRow(5, 2, 9, text, "markdown", false, true, now, now))

		c, err := NewCommentRepository(db).GetByID(context.Background(), 5)
		require.NoError(t, err)
		assert.EqualValues(t, 5, c.ID)
		assert.EqualValues(t, 2, c.DiscussionID)
		require.NotNil(t, c.PosterID)
		assert.EqualValues(t, 9, *c.PosterID)
		assert.Equal(t, text, c.Text)
		assert.Equal(t, domain.MarkupMarkdown, c.TextMarkup)
		assert.True(t, c.FirstComment)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(commentColumns))

		_, err := NewCommentRepository(db).GetByID(context.Background(), 5)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WillReturnError(errors.New("bad connection"))

		_, err := NewCommentRepository(db).GetByID(context.Background(), 5)
		assert.ErrorIs(t, err, domain.ErrStorage)
	})
}

func TestCommentRepository_Store(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `comments`")).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	poster := int64(3)
	c := domain.Comment{DiscussionID: 2, PosterID: &poster, Text: faker.Paragraph(), TextMarkup: domain.MarkupHTML}
	require.NoError(t, NewCommentRepository(db).Store(context.Background(), &c))
	assert.EqualValues(t, 12, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCommentRepository_SetSoftDeleted(t *testing.T) {
	query := regexp.QuoteMeta("UPDATE `comments` SET")

	t.Run("updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, NewCommentRepository(db).SetSoftDeleted(context.Background(), 5))
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.ErrorIs(t, NewCommentRepository(db).SetSoftDeleted(context.Background(), 5), domain.ErrNotFound)
	})
}

func TestCommentRepository_SetFirstComment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepository(db)

	// no ids, no query
	require.NoError(t, repo.SetFirstComment(context.Background(), nil, true))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `comments` SET `first_comment`=? WHERE id IN (?,?)")).
		WithArgs(false, 4, 6).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	assert.NoError(t, repo.SetFirstComment(context.Background(), []int64{4, 6}, false))
}

func TestCommentRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `comments` WHERE `comments`.`id` = ?")).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.ErrorIs(t, NewCommentRepository(db).Delete(context.Background(), 5), domain.ErrNotFound)
}

func TestCommentRepository_FetchByDiscussion(t *testing.T) {
	now := time.Now()

	t.Run("live only", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `comments` WHERE discussion_id = ? AND soft_deleted = ? ORDER BY id")).
			WithArgs(2, false).
			WillReturnRows(sqlmock.NewRows(commentColumns).
				AddRow(1, 2, 9, "a", "html", false, true, now, now).
				AddRow(3, 2, nil, "b", "html", false, false, now, now))

		res, err := NewCommentRepository(db).FetchByDiscussion(context.Background(), 2, false)
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.EqualValues(t, 1, res[0].ID)
		assert.Nil(t, res[1].PosterID)
	})

	t.Run("including deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `comments` WHERE discussion_id = ? ORDER BY id")).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows(commentColumns))

		res, err := NewCommentRepository(db).FetchByDiscussion(context.Background(), 2, true)
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}
