package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "sitebuilder.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, exists := err.Context().GetString("file")
		require.True(t, exists)
		assert.Equal(t, "sitebuilder.yaml", file)
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		assert.True(t, IsClassified(err))
		assert.True(t, HasCategory(err, CategoryConfig))
		assert.True(t, err.IsFatal())
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := RenderError("no renderer").Build()
		wrapped := errors.Join(errors.New("page failed"), inner)

		classified, ok := AsClassified(wrapped)
		require.True(t, ok)
		assert.Equal(t, CategoryRender, classified.Category())
		assert.Equal(t, CategoryRender, GetCategory(wrapped))
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		plain := errors.New("plain")
		assert.Equal(t, CategoryInternal, GetCategory(plain))
		assert.False(t, IsClassified(plain))
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		sentinel := errors.New("unsupported content type")
		err := WrapError(sentinel, CategoryRender, "no renderer registered").
			Warning().
			WithContext("page", "docs/intro").
			WithContext("extension", "rst").
			Build()

		assert.Equal(t, SeverityWarning, err.Severity())
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, "[render:warning] no renderer registered (extension=rst, page=docs/intro): unsupported content type", err.Error())
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := FileSystemError("write failed").Build()
		derived := base.WithContext("path", "out/index.html")

		_, inBase := base.Context().Get("path")
		assert.False(t, inBase)
		path, _ := derived.Context().GetString("path")
		assert.Equal(t, "out/index.html", path)
	})

	t.Run("Is compares category and message", func(t *testing.T) {
		a := NotFoundError("template missing").WithContext("template", "page").Build()
		b := NotFoundError("template missing").Build()
		c := NotFoundError("page missing").Build()

		assert.ErrorIs(t, a, b)
		assert.NotErrorIs(t, a, c)
	})
}

func TestErrorContextMerge(t *testing.T) {
	var empty ErrorContext
	other := ErrorContext{"a": 1}
	assert.Equal(t, other, empty.Merge(other))

	merged := ErrorContext{"a": 1, "b": 2}.Merge(ErrorContext{"b": 3})
	assert.Equal(t, ErrorContext{"a": 1, "b": 3}, merged)
}

func TestClassifiedError_WithContextOverrides(t *testing.T) {
	base := RenderError("renderer failed").WithContext("page", "a").Build()
	derived := base.WithContext("page", "b")

	page, _ := base.Context().GetString("page")
	assert.Equal(t, "a", page)
	page, _ = derived.Context().GetString("page")
	assert.Equal(t, "b", page)
	assert.True(t, derived.IsFatal())
}
