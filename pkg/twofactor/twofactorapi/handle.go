// Package twofactorapi exposes the two-factor service over HTTP. The
// routes are mounted under the account's two-factor path and expect an
// authenticated user in the request context.
package twofactorapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/hypeit-za/panel/pkg/activity"
	"github.com/hypeit-za/panel/pkg/authn"
	pkgerrors "github.com/hypeit-za/panel/pkg/errors"
	"github.com/hypeit-za/panel/pkg/metrics"
	"github.com/hypeit-za/panel/pkg/notification"
	"github.com/hypeit-za/panel/pkg/twofactor"
	"github.com/hypeit-za/panel/pkg/user"
)

// NoticeSender delivers account-security notices after a successful
// state change. Delivery is best effort.
type NoticeSender interface {
	Send(noticeType notification.NoticeType, data notification.NotificationData) error
}

type Handle struct {
	twoFaService twofactor.TwoFactorService
	userService  *user.UserService
	activity     *activity.ActivityService
	notices      NoticeSender
}

// Option configures a Handle
type Option func(*Handle)

// WithActivity records account-security events for each operation
func WithActivity(a *activity.ActivityService) Option {
	return func(h *Handle) {
		h.activity = a
	}
}

// WithNotices sends email notices after successful state changes
func WithNotices(n NoticeSender) Option {
	return func(h *Handle) {
		h.notices = n
	}
}

// NewHandle creates a new Handle
func NewHandle(twoFaService twofactor.TwoFactorService, userService *user.UserService, opts ...Option) *Handle {
	h := &Handle{
		twoFaService: twoFaService,
		userService:  userService,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RouterConfig carries the per-route middleware the caller wants
// applied. The passcode and recovery limiters exist to slow guessing;
// nil entries are skipped.
type RouterConfig struct {
	TwoFactorLimiter func(http.Handler) http.Handler
	RecoveryLimiter  func(http.Handler) http.Handler
}

// Handler returns an http.Handler for the two-factor API
func Handler(h *Handle, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetStatus)
	r.Post("/setup", h.PostSetup)

	r.Group(func(r chi.Router) {
		if cfg.TwoFactorLimiter != nil {
			r.Use(cfg.TwoFactorLimiter)
		}
		r.Post("/toggle", h.PostToggle)
		r.Post("/disable", h.PostDisable)
	})

	r.Group(func(r chi.Router) {
		if cfg.RecoveryLimiter != nil {
			r.Use(cfg.RecoveryLimiter)
		}
		r.Post("/recovery", h.PostRecovery)
	})

	return r
}

// GetStatus handles GET /
func (h *Handle) GetStatus(w http.ResponseWriter, r *http.Request) {
	authUser, ok := authn.AuthUserFromContext(r.Context())
	if !ok {
		renderUnauthorized(w, r)
		return
	}

	info, err := h.userService.GetUserInfo(r.Context(), authUser.UserUuid)
	if err != nil {
		renderError(w, r, err)
		return
	}

	status, err := h.twoFaService.Status(r.Context(), authUser.UserUuid)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, StatusResponse{
		User:           info,
		Enabled:        status.Enabled,
		CodesRemaining: status.CodesRemaining,
	})
}

// PostSetup handles POST /setup
func (h *Handle) PostSetup(w http.ResponseWriter, r *http.Request) {
	var req SetupRequest
	// An empty body is fine here, setup defaults to the caller's own account
	_ = render.DecodeJSON(r.Body, &req)

	target, errResp := h.resolveTarget(r, req.UserID)
	if errResp != nil {
		renderErrorResponse(w, r, errResp)
		return
	}

	result, err := h.twoFaService.Setup(r.Context(), target)
	if err != nil {
		metrics.TwoFactorOperationsTotal.WithLabelValues("setup", "error").Inc()
		renderError(w, r, err)
		return
	}

	metrics.TwoFactorOperationsTotal.WithLabelValues("setup", "success").Inc()
	h.recordActivity(r, target.ID, activity.EventTwoFactorSetup, nil)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, SetupResponse{
		Secret: result.Secret,
		URI:    result.URI,
	})
}

// PostToggle handles POST /toggle
func (h *Handle) PostToggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderBadRequest(w, r, "unable to parse body")
		return
	}
	if req.Passcode == "" {
		renderBadRequest(w, r, "passcode is required")
		return
	}

	target, errResp := h.resolveTarget(r, req.UserID)
	if errResp != nil {
		renderErrorResponse(w, r, errResp)
		return
	}

	h.toggle(w, r, target, req.Passcode, req.Enabled)
}

// PostDisable handles POST /disable. It is toggle with a pinned
// desired state, kept as its own route for clients that never want to
// accidentally enable.
func (h *Handle) PostDisable(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderBadRequest(w, r, "unable to parse body")
		return
	}
	if req.Passcode == "" {
		renderBadRequest(w, r, "passcode is required")
		return
	}

	target, errResp := h.resolveTarget(r, req.UserID)
	if errResp != nil {
		renderErrorResponse(w, r, errResp)
		return
	}

	disabled := false
	h.toggle(w, r, target, req.Passcode, &disabled)
}

func (h *Handle) toggle(w http.ResponseWriter, r *http.Request, target user.User, passcode string, desired *bool) {
	codes, err := h.twoFaService.Toggle(r.Context(), target, passcode, desired)
	if err != nil {
		metrics.TwoFactorOperationsTotal.WithLabelValues("toggle", "error").Inc()
		renderError(w, r, err)
		return
	}

	enabled := len(codes) > 0
	if desired != nil {
		enabled = *desired
	}

	metrics.TwoFactorOperationsTotal.WithLabelValues("toggle", "success").Inc()
	if enabled {
		metrics.RecoveryCodesIssuedTotal.WithLabelValues().Add(float64(len(codes)))
	}

	event := activity.EventTwoFactorDisabled
	noticeType := notification.TwoFactorDisabledNotice
	if enabled {
		event = activity.EventTwoFactorEnabled
		noticeType = notification.TwoFactorEnabledNotice
	}
	h.recordActivity(r, target.ID, event, map[string]string{
		"codes_issued": strconv.Itoa(len(codes)),
	})
	h.sendNotice(noticeType, target, nil)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ToggleResponse{
		Enabled:       enabled,
		RecoveryCodes: codes,
	})
}

// PostRecovery handles POST /recovery
func (h *Handle) PostRecovery(w http.ResponseWriter, r *http.Request) {
	var req RecoveryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderBadRequest(w, r, "unable to parse body")
		return
	}
	if req.Code == "" {
		renderBadRequest(w, r, "code is required")
		return
	}

	authUser, ok := authn.AuthUserFromContext(r.Context())
	if !ok {
		renderUnauthorized(w, r)
		return
	}

	target, err := h.userService.GetUser(r.Context(), authUser.UserUuid)
	if err != nil {
		renderError(w, r, err)
		return
	}

	if err := h.twoFaService.ConsumeRecoveryCode(r.Context(), target, req.Code); err != nil {
		metrics.TwoFactorOperationsTotal.WithLabelValues("recovery", "error").Inc()
		renderError(w, r, err)
		return
	}

	status, err := h.twoFaService.Status(r.Context(), target.ID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	metrics.TwoFactorOperationsTotal.WithLabelValues("recovery", "success").Inc()
	h.recordActivity(r, target.ID, activity.EventRecoveryCodeUsed, map[string]string{
		"codes_remaining": strconv.Itoa(status.CodesRemaining),
	})
	h.sendNotice(notification.RecoveryCodeUsedNotice, target, map[string]string{
		"CodesRemaining": strconv.Itoa(status.CodesRemaining),
	})

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RecoveryResponse{
		Message:        "recovery code accepted",
		CodesRemaining: status.CodesRemaining,
	})
}

// resolveTarget loads the account the operation applies to. A user_id
// in the body targets another account and requires an admin role.
func (h *Handle) resolveTarget(r *http.Request, requestedID *string) (user.User, *ErrorResponse) {
	authUser, ok := authn.AuthUserFromContext(r.Context())
	if !ok {
		return user.User{}, &ErrorResponse{Code: string(pkgerrors.ErrCodeUnauthorized), Message: "authentication required"}
	}

	targetID := authUser.UserUuid
	if requestedID != nil && *requestedID != "" && *requestedID != authUser.UserId {
		parsed, err := uuid.Parse(*requestedID)
		if err != nil {
			return user.User{}, &ErrorResponse{Code: string(pkgerrors.ErrCodeInvalidInput), Message: "invalid user id"}
		}

		if !authn.IsAdmin(authUser) {
			slog.Warn("User attempted to manage another user's 2FA without permission",
				"userId", authUser.UserId,
				"targetId", parsed)
			return user.User{}, &ErrorResponse{Code: string(pkgerrors.ErrCodeForbidden), Message: "forbidden: you can only manage your own 2FA"}
		}

		slog.Info("Admin user managing 2FA for another user",
			"adminId", authUser.UserId,
			"targetId", parsed,
			"roles", authUser.ExtraClaims.Roles)
		targetID = parsed
	}

	target, err := h.userService.GetUser(r.Context(), targetID)
	if err != nil {
		code := pkgerrors.GetCode(err)
		return user.User{}, &ErrorResponse{Code: string(code), Message: messageForCode(code)}
	}

	return target, nil
}

func (h *Handle) recordActivity(r *http.Request, targetID uuid.UUID, event string, metadata map[string]string) {
	if h.activity == nil {
		return
	}

	actor := ""
	if authUser, ok := authn.AuthUserFromContext(r.Context()); ok {
		actor = authUser.UserId
	}

	h.activity.Record(r.Context(), activity.RecordEventParams{
		UserID:   targetID,
		Actor:    actor,
		Event:    event,
		IP:       r.RemoteAddr,
		Metadata: metadata,
	})
}

func (h *Handle) sendNotice(noticeType notification.NoticeType, target user.User, data map[string]string) {
	if h.notices == nil {
		return
	}

	if data == nil {
		data = make(map[string]string)
	}
	name := target.Name
	if name == "" {
		name = target.Email
	}
	data["Name"] = name

	// Best effort: a failed notice never fails the operation
	if err := h.notices.Send(noticeType, notification.NotificationData{
		To:   target.Email,
		Data: data,
	}); err != nil {
		slog.Error("Failed to send notice", "noticeType", noticeType, "userId", target.ID, "error", err)
	}
}

// messageForCode keeps the outward-facing messages fixed so internals
// never leak through error text
func messageForCode(code pkgerrors.ErrorCode) string {
	switch code {
	case pkgerrors.ErrCode2FAInvalid:
		return "invalid passcode or recovery code"
	case pkgerrors.ErrCode2FANotConfigured:
		return "two-factor authentication is not configured for this account"
	case pkgerrors.ErrCodeUserNotFound:
		return "user not found"
	case pkgerrors.ErrCodeUnauthorized:
		return "authentication required"
	case pkgerrors.ErrCodeForbidden:
		return "forbidden"
	default:
		return "an unexpected error occurred"
	}
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := pkgerrors.GetCode(err)
	status := pkgerrors.MapErrorCodeToHTTPStatus(code)

	if status >= http.StatusInternalServerError {
		slog.Error("Two-factor operation failed", "code", code, "error", err)
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{
		Code:    string(code),
		Message: messageForCode(code),
	})
}

func renderErrorResponse(w http.ResponseWriter, r *http.Request, resp *ErrorResponse) {
	render.Status(r, pkgerrors.MapErrorCodeToHTTPStatus(pkgerrors.ErrorCode(resp.Code)))
	render.JSON(w, r, resp)
}

func renderBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{
		Code:    string(pkgerrors.ErrCodeInvalidInput),
		Message: message,
	})
}

func renderUnauthorized(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, ErrorResponse{
		Code:    string(pkgerrors.ErrCodeUnauthorized),
		Message: "authentication required",
	})
}
