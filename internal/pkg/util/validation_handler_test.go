package util

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestNormalizeSlug(t *testing.T) {
	decomposed := norm.NFD.String("다루기")
	require.NotEqual(t, "다루기", decomposed)

	assert.Equal(t, "다루기", NormalizeSlug("  "+decomposed+" "))
	assert.Equal(t, "hello-world", NormalizeSlug("hello-world"))
}

func TestIsSlug(t *testing.T) {
	for _, ok := range []string{"hello", "hello-world_2", "스토리-다루기"} {
		assert.True(t, IsSlug(ok), ok)
	}
	for _, bad := range []string{"", "a b", "a/b", "a?b", "<x>"} {
		assert.False(t, IsSlug(bad), bad)
	}
}

func TestValidationMessage(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("slug", validateSlug))

	type form struct {
		Slug string `validate:"required,slug"`
	}
	err := v.Struct(form{Slug: "a b"})
	msg, ok := ValidationMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Invalid field [Slug], rule [slug]", msg)

	_, ok = ValidationMessage(assert.AnError)
	assert.False(t, ok)
}
