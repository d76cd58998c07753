// Package binder decodes HTTP request data into typed request structs.
//
// Two binders are provided:
//
//   - JSON(): strict JSON body decoding with a size limit
//   - Path(extractor): URL path parameters, usually chi.URLParam
//
// Path binds string, integer, float and bool fields, plus any type that
// implements encoding.TextUnmarshaler (uuid.UUID, for instance):
//
//	type checkRequest struct {
//	    UserID   uuid.UUID `path:"userID"`
//	    Resource string    `path:"resource"`
//	}
//
// Binders return ErrBinderNotApplicable when the request carries nothing for
// them to bind; handler.Wrap skips those silently. Any other error is a client
// error and is reported as 400 by the handler package.
package binder
