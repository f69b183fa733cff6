package validator

import (
	"errors"
	"strings"
	"testing"

	"anoa.com/inkblog/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentInput struct {
	Content string `json:"content" validate:"required,max=500"`
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(commentInput{Content: "Nice shot!"}))
}

func TestValidate_Required(t *testing.T) {
	err := Validate(commentInput{})

	var vErr *apperror.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "content", vErr.Fields[0].Field)
	assert.Equal(t, "Content is required", vErr.Fields[0].Message)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestValidate_MaxCountsCharacters(t *testing.T) {
	// 500 multi-byte characters are within the limit.
	assert.NoError(t, Validate(commentInput{Content: strings.Repeat("é", 500)}))

	err := Validate(commentInput{Content: strings.Repeat("a", 501)})
	var vErr *apperror.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Content cannot be more than 500 characters", vErr.Fields[0].Message)
}
