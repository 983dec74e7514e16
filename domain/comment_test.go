package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Guyuepp/go-clean-discussion/domain"
)

func TestComment_Fragment(t *testing.T) {
	c := domain.Comment{ID: 42}
	assert.Equal(t, "#comment-42", c.Fragment())

	c.FirstComment = true
	assert.Empty(t, c.Fragment())
}

func TestComment_PostedBy(t *testing.T) {
	poster := int64(3)
	c := domain.Comment{PosterID: &poster}
	assert.True(t, c.PostedBy(3))
	assert.False(t, c.PostedBy(4))

	c.PosterID = nil
	assert.False(t, c.PostedBy(3))
}

func TestFirstLiveComment(t *testing.T) {
	_, ok := domain.FirstLiveComment(nil)
	assert.False(t, ok)

	first, ok := domain.FirstLiveComment([]domain.Comment{
		{ID: 1, SoftDeleted: true},
		{ID: 2},
		{ID: 3},
	})
	assert.True(t, ok)
	assert.EqualValues(t, 2, first.ID)
}

func TestTextMarkup_Valid(t *testing.T) {
	assert.True(t, domain.MarkupHTML.Valid())
	assert.True(t, domain.MarkupMarkdown.Valid())
	assert.False(t, domain.TextMarkup("bbcode").Valid())
}

func TestErrors(t *testing.T) {
	verr := &domain.ValidationError{Field: "Text", Reason: "required"}
	assert.ErrorIs(t, verr, domain.ErrValidation)
	assert.ErrorIs(t, verr, domain.ErrBadParamInput)

	cause := errors.New("connection reset")
	serr := domain.NewStorageError("delete", cause)
	assert.ErrorIs(t, serr, domain.ErrStorage)
	assert.ErrorIs(t, serr, cause)
	assert.Same(t, serr, domain.NewStorageError("again", serr))
	assert.Nil(t, domain.NewStorageError("op", nil))
	assert.ErrorIs(t, domain.NewStorageError("op", fmt.Errorf("wrapped: %w", domain.ErrNotFound)), domain.ErrNotFound)
	assert.NotErrorIs(t, domain.NewStorageError("op", domain.ErrNotFound), domain.ErrStorage)

	cerr := &domain.CascadeError{Op: "hard delete", CommentID: 1, Err: serr}
	assert.ErrorIs(t, cerr, domain.ErrCascade)
	assert.ErrorIs(t, cerr, domain.ErrStorage)
	assert.NotErrorIs(t, cerr, domain.ErrValidation)
}
