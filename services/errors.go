// services/errors.go
package services

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Machine-readable error codes returned alongside every failed mutation.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidState        = "INVALID_STATE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeConflict            = "CONFLICT"
	CodeRateLimited         = "RATE_LIMITED"
	CodePolicyRejected      = "POLICY_REJECTED"
	CodeAdmissionRejected   = "ADMISSION_REJECTED"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
)

// OpError carries a code from the taxonomy above plus whatever context the
// caller needs to distinguish "try again later" from "this will never succeed
// as submitted" from "contact an operator".
type OpError struct {
	Code    string
	Message string
	// Extra is merged into the JSON error body (retry_after, holder, hint...).
	Extra map[string]interface{}
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func opErr(code, format string, args ...interface{}) *OpError {
	return &OpError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *OpError) withExtra(extra map[string]interface{}) *OpError {
	e.Extra = extra
	return e
}

// httpStatus maps taxonomy codes onto HTTP statuses.
func (e *OpError) httpStatus() int {
	switch e.Code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeInvalidState, CodeConflict:
		return fiber.StatusConflict
	case CodeUnauthorized:
		return fiber.StatusForbidden
	case CodeRateLimited:
		return fiber.StatusTooManyRequests
	case CodePolicyRejected, CodeAdmissionRejected:
		return fiber.StatusUnprocessableEntity
	case CodeUpstreamUnavailable:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// respondErr writes the structured error body for a failed operation.
func respondErr(c *fiber.Ctx, err *OpError) error {
	body := fiber.Map{"error": err.Message, "code": err.Code}
	for k, v := range err.Extra {
		body[k] = v
	}
	return c.Status(err.httpStatus()).JSON(body)
}
