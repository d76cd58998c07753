package entitlement

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/storykit/handler"
	"github.com/dmitrymomot/storykit/pkg/binder"
	"github.com/dmitrymomot/storykit/pkg/logger"
	"github.com/dmitrymomot/storykit/pkg/tier"
	"github.com/dmitrymomot/storykit/pkg/validator"
	svc "github.com/dmitrymomot/storykit/svc/entitlement"
	"github.com/dmitrymomot/storykit/svc/subscription"
)

var (
	errInvalidUserID   = handler.NewHTTPError(http.StatusBadRequest, "invalid_user_id")
	errUnknownResource = handler.NewHTTPError(http.StatusBadRequest, "unknown_resource")
	errMissingEnabled  = handler.NewHTTPError(http.StatusBadRequest, "missing_enabled")
	errUnknownTier     = handler.NewHTTPError(http.StatusBadRequest, "unknown_tier")
	errUnknownStatus   = handler.NewHTTPError(http.StatusBadRequest, "unknown_status")
	errReasonTooLong   = handler.NewHTTPError(http.StatusBadRequest, "reason_too_long")
)

var fieldErrors = map[string]handler.HTTPError{
	"user_id": errInvalidUserID,
	"enabled": errMissingEnabled,
	"reason":  errReasonTooLong,
	"tier":    errUnknownTier,
	"status":  errUnknownStatus,
}

const maxReasonLength = 500

type handlers struct {
	evaluator    Evaluator
	subs         Subscriptions
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

// wrap binds path parameters and, when present, a JSON body.
func wrap[R any](eh handler.ErrorHandler[handler.Context], h handler.HandlerFunc[handler.Context, R]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binder.Path(chi.URLParam), binder.JSON()),
		handler.WithErrorHandler[handler.Context, R](eh),
	)
}

type userRequest struct {
	UserID uuid.UUID `path:"userID"`
}

type resourceRequest struct {
	UserID   uuid.UUID `path:"userID"`
	Resource string    `path:"resource"`
}

func (r resourceRequest) validate() (svc.Resource, error) {
	if r.UserID == uuid.Nil {
		return "", errInvalidUserID
	}
	res, err := svc.ParseResource(r.Resource)
	if err != nil {
		return "", errUnknownResource
	}
	return res, nil
}

func (h *handlers) check(ctx handler.Context, req resourceRequest) handler.Response {
	res, err := req.validate()
	if err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(h.evaluator.CanCreate(ctx, req.UserID, res))
}

type trackResponse struct {
	Tracked bool `json:"tracked"`
}

func (h *handlers) track(ctx handler.Context, req resourceRequest) handler.Response {
	res, err := req.validate()
	if err != nil {
		return handler.JSONError(err)
	}
	tracked := h.evaluator.TrackCreation(ctx, req.UserID, res)
	return handler.JSON(trackResponse{Tracked: tracked}, handler.WithJSONStatus(http.StatusAccepted))
}

func (h *handlers) summary(ctx handler.Context, req userRequest) handler.Response {
	if req.UserID == uuid.Nil {
		return handler.JSONError(errInvalidUserID)
	}
	return handler.JSON(h.evaluator.GetUsageSummary(ctx, req.UserID))
}

type bypassRequest struct {
	UserID  uuid.UUID `path:"userID" json:"-"`
	Enabled *bool     `json:"enabled"`
	Reason  string    `json:"reason"`
}

func (h *handlers) setBypass(ctx handler.Context, req bypassRequest) handler.Response {
	if err := validator.Apply(
		validator.NonNilUUID("user_id", req.UserID),
		validator.RequiredComparable("enabled", req.Enabled),
		validator.MaxLenString("reason", req.Reason, maxReasonLength),
	); err != nil {
		return handler.JSONError(validationError(err))
	}

	if err := h.subs.SetDevBypass(ctx, req.UserID, *req.Enabled, req.Reason); err != nil {
		return h.storeError(ctx, req.UserID, "set dev bypass", err)
	}
	return handler.Empty()
}

type tierRequest struct {
	UserID uuid.UUID           `path:"userID" json:"-"`
	Tier   tier.Tier           `json:"tier"`
	Status subscription.Status `json:"status"`
}

func (h *handlers) setTier(ctx handler.Context, req tierRequest) handler.Response {
	if req.Status == "" {
		req.Status = subscription.StatusActive
	}
	if err := validator.Apply(
		validator.NonNilUUID("user_id", req.UserID),
		validator.InList("tier", req.Tier, tier.All),
		validator.InList("status", req.Status, subscription.Statuses),
	); err != nil {
		return handler.JSONError(validationError(err))
	}

	if err := h.subs.SetTier(ctx, req.UserID, req.Tier, req.Status); err != nil {
		return h.storeError(ctx, req.UserID, "set tier", err)
	}
	return handler.Empty()
}

// validationError reports the first failing field under its API error code.
func validationError(err error) error {
	verrs := validator.ExtractValidationErrors(err)
	if len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	code, ok := fieldErrors[first.Field]
	if !ok {
		code = handler.ErrBadRequest
	}
	return fmt.Errorf("%w: %s %s", code, first.Field, first.Message)
}

func (h *handlers) storeError(ctx handler.Context, userID uuid.UUID, op string, err error) handler.Response {
	if errors.Is(err, subscription.ErrInvalidUserID) {
		return handler.JSONError(errInvalidUserID)
	}
	h.log.ErrorContext(ctx, op+" failed", logger.UserID(userID), logger.Error(err))
	return handler.JSONError(handler.ErrServiceUnavailable)
}
