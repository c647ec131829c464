package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/smallbiznis/ispdesk/internal/activity/domain"
	analyticsdomain "github.com/smallbiznis/ispdesk/internal/analytics/domain"
	campaigndomain "github.com/smallbiznis/ispdesk/internal/campaign/domain"
	customerdomain "github.com/smallbiznis/ispdesk/internal/customer/domain"
	paymentdomain "github.com/smallbiznis/ispdesk/internal/payment/domain"
	plandomain "github.com/smallbiznis/ispdesk/internal/plan/domain"
	reminderdomain "github.com/smallbiznis/ispdesk/internal/reminder/domain"
	settingsdomain "github.com/smallbiznis/ispdesk/internal/settings/domain"
	shopdomain "github.com/smallbiznis/ispdesk/internal/shop/domain"
	ticketdomain "github.com/smallbiznis/ispdesk/internal/ticket/domain"
	"github.com/smallbiznis/ispdesk/pkg/docstore"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

// Every shop-scoped service reports a missing tenant the same way.
var tenantErrors = []error{
	customerdomain.ErrInvalidShop,
	plandomain.ErrInvalidShop,
	paymentdomain.ErrInvalidShop,
	ticketdomain.ErrInvalidShop,
	campaigndomain.ErrInvalidShop,
	activitydomain.ErrInvalidShop,
	reminderdomain.ErrInvalidShop,
	settingsdomain.ErrInvalidShop,
	analyticsdomain.ErrInvalidShop,
}

var validationErrors = []error{
	ErrInvalidRequest,
	shopdomain.ErrInvalidName,
	shopdomain.ErrInvalidID,
	customerdomain.ErrInvalidName,
	customerdomain.ErrInvalidEmail,
	customerdomain.ErrInvalidStatus,
	customerdomain.ErrInvalidAmount,
	customerdomain.ErrInvalidID,
	plandomain.ErrInvalidName,
	plandomain.ErrInvalidPrice,
	plandomain.ErrInvalidCost,
	plandomain.ErrInvalidCycle,
	plandomain.ErrInvalidID,
	paymentdomain.ErrInvalidCustomer,
	paymentdomain.ErrInvalidPlan,
	paymentdomain.ErrInvalidAmount,
	paymentdomain.ErrInvalidMethod,
	paymentdomain.ErrInvalidStatus,
	paymentdomain.ErrInvalidID,
	ticketdomain.ErrInvalidSubject,
	ticketdomain.ErrInvalidEmail,
	ticketdomain.ErrInvalidPriority,
	ticketdomain.ErrInvalidStatus,
	ticketdomain.ErrInvalidID,
	campaigndomain.ErrInvalidChannel,
	activitydomain.ErrInvalidTitle,
	reminderdomain.ErrInvalidCustomer,
	reminderdomain.ErrInvalidSchedule,
	settingsdomain.ErrInvalidCurrency,
	settingsdomain.ErrInvalidEmail,
}

var notFoundErrors = []error{
	ErrNotFound,
	docstore.ErrNotFound,
	shopdomain.ErrNotFound,
	customerdomain.ErrNotFound,
	plandomain.ErrNotFound,
	paymentdomain.ErrNotFound,
	ticketdomain.ErrNotFound,
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isAny(err, validationErrors) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized), isAny(err, tenantErrors):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrConflict), errors.Is(err, docstore.ErrAlreadyExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isAny(err, notFoundErrors):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog returns the response type and code logged with a
// failed request.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func validationErrorCode(err error) string {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
