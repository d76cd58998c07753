// Package handler provides type-safe HTTP request handling for the JSON API.
//
// Handlers are plain generic functions that receive a bound request struct
// and return a Response:
//
//	type checkRequest struct {
//		UserID uuid.UUID `path:"userID"`
//	}
//
//	func check(ctx handler.Context, req checkRequest) handler.Response {
//		decision, err := evaluator.CanCreate(ctx, req.UserID, entitlement.Story)
//		if err != nil {
//			return handler.JSONError(handler.ErrBadRequest)
//		}
//		return handler.JSON(decision)
//	}
//
//	r.Get("/users/{userID}/check", handler.Wrap(check,
//		handler.WithBinders[handler.Context, checkRequest](binder.Path(chi.URLParam)),
//	))
//
// Every JSON body uses the JSONResponse envelope: successful payloads under
// "data", failures under "error" with a stable machine-readable code.
//
// Binding and rendering errors go to the ErrorHandler. NewErrorHandler logs
// them and answers with a JSON error; binder failures become 400 (415 for a
// wrong media type) and HTTPError values keep their own status.
package handler
