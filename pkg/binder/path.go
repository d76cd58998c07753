package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// Path creates a path parameter binder using the provided extractor, which is
// called once per tagged field:
//
//	r.Get("/users/{userID}", handler.Wrap(h,
//		handler.WithBinders[handler.Context, request](binder.Path(chi.URLParam)),
//	))
//
// Fields are bound by their `path:"name"` tag; `path:"-"` and untagged fields
// are skipped. Empty values leave the field untouched.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidTarget)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidTarget)
		}
		rv = rv.Elem()
		if rv.Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidTarget)
		}

		rt := rv.Type()
		for i := range rv.NumField() {
			field := rv.Field(i)
			sf := rt.Field(i)
			if !field.CanSet() {
				continue
			}

			name, ok := fieldTag(sf, "path")
			if !ok {
				continue
			}

			value := extractor(r, name)
			if value == "" {
				continue
			}

			if err := setFieldValue(field, value); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrFailedToParsePath, name, err)
			}
		}

		return nil
	}
}
