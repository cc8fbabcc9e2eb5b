package genyrator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turner-townsend/genyrator"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := genyrator.NewNotFoundError("Book")
		assert.Equal(t, "genyrator: Book not found", err.Error())

		err = genyrator.NewNotFoundErrorWithID("Book", "b1")
		assert.Equal(t, "genyrator: Book not found (id=b1)", err.Error())
		assert.Equal(t, "Book", err.Label())
		assert.Equal(t, "b1", err.ID())
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := genyrator.NewNotFoundError("Author")
		assert.True(t, errors.Is(err, genyrator.ErrNotFound))
		assert.True(t, genyrator.IsNotFound(fmt.Errorf("wrapper: %w", err)))
		assert.True(t, genyrator.IsNotFound(genyrator.ErrNotFound))
		assert.False(t, genyrator.IsNotFound(errors.New("other error")))
		assert.False(t, genyrator.IsNotFound(nil))
	})
}

func TestAggregateError(t *testing.T) {
	assert.NoError(t, genyrator.NewAggregateError())
	assert.NoError(t, genyrator.NewAggregateError(nil, nil))

	single := errors.New("one")
	assert.Equal(t, single, genyrator.NewAggregateError(nil, single))

	first, second := errors.New("first"), genyrator.NewNotFoundError("Genre")
	err := genyrator.NewAggregateError(first, second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple errors")
	assert.Contains(t, err.Error(), "[1] first")
	assert.Contains(t, err.Error(), "[2] genyrator: Genre not found")
	assert.True(t, errors.Is(err, first))
	assert.True(t, genyrator.IsNotFound(err))
}

func TestMutationError(t *testing.T) {
	cause := errors.New("constraint violated")
	err := genyrator.NewMutationError("Book", "create", cause)
	assert.Equal(t, "genyrator: create Book: constraint violated", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.True(t, genyrator.IsMutationError(fmt.Errorf("wrap: %w", err)))
	assert.False(t, genyrator.IsMutationError(cause))
}

func TestSchemaDefaultMethods(t *testing.T) {
	t.Parallel()

	type TestSchema struct {
		genyrator.Schema
	}
	s := TestSchema{}
	assert.Nil(t, s.Fields())
	assert.Nil(t, s.Relationships())
	assert.Nil(t, s.Mixin())
	assert.Equal(t, genyrator.Config{}, s.Config())

	var _ genyrator.Interface = s
}
