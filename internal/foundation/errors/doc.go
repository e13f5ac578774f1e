// Package errors provides the classified error primitives used across sitebuilder.
//
// A ClassifiedError carries a category (what kind of failure), a severity (how
// bad it is) and free-form context. The build pipeline never retries: errors
// either abort the run or are logged as warnings and swallowed.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryRender, "render failed").
//		WithContext("page", page.Name()).
//		WithContext("extension", page.Extension()).
//		Build()
package errors
