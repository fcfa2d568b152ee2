package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	request "roofing_crm/internal/adapter/http/dto/request"
	"roofing_crm/internal/adapter/http/middleware"
	"roofing_crm/internal/domain/entities"
	"roofing_crm/internal/domain/workflow"
	"roofing_crm/internal/usecase"
	"roofing_crm/pkg"

	"github.com/gin-gonic/gin"
)

func newInvalidRequest() *pkg.AppError {
	return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// actorOrAbort returns the authenticated caller or writes a 401.
func actorOrAbort(c *gin.Context) (entities.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		writeError(c, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid Authorization header", http.StatusUnauthorized))
		return entities.Actor{}, false
	}
	return actor, true
}

// mapWorkflowError translates deal, pin and commission errors. Typed
// rejections carry their data in details so clients can render them.
func mapWorkflowError(err error) *pkg.AppError {
	var (
		backward   *workflow.BackwardTransitionError
		missing    *workflow.MissingRequiredFieldError
		role       *workflow.RoleNotPermittedError
		locked     *workflow.FinancialsLockedError
		incomplete *workflow.IncompleteApprovalSnapshotError
		override   *workflow.InvalidOverrideError
	)

	switch {
	case errors.As(err, &backward):
		return pkg.NewDomainError("BACKWARD_TRANSITION_REJECTED", "Moving a deal backwards requires admin confirmation", err, http.StatusConflict).
			WithDetail("from", backward.From).
			WithDetail("to", backward.To).
			WithDetail("confirmation_required", backward.ConfirmationRequired)
	case errors.As(err, &missing):
		return pkg.NewDomainError("MISSING_REQUIRED_FIELD", "A required field is missing for the target status", err, http.StatusUnprocessableEntity).
			WithDetail("field", missing.Field).
			WithDetail("status", missing.Status)
	case errors.As(err, &role):
		return pkg.NewDomainError("ROLE_NOT_PERMITTED", "Your role cannot perform this operation", err, http.StatusForbidden).
			WithDetail("role", role.Role).
			WithDetail("operation", role.Operation)
	case errors.As(err, &locked):
		return pkg.NewDomainError("FINANCIALS_LOCKED", "Financial fields are locked after approval", err, http.StatusConflict).
			WithDetail("fields", locked.Fields)
	case errors.As(err, &incomplete):
		return pkg.NewDomainError("INCOMPLETE_APPROVAL_SNAPSHOT", "Approval requires all financial fields", err, http.StatusUnprocessableEntity).
			WithDetail("missing", incomplete.Missing)
	case errors.As(err, &override):
		return pkg.NewDomainError("INVALID_OVERRIDE", "Invalid commission override", err, http.StatusBadRequest).
			WithDetail("reason", override.Reason)
	case errors.Is(err, workflow.ErrUnknownStatus):
		return pkg.NewDomainErrorSimple("UNKNOWN_STATUS", "Unknown deal status", http.StatusBadRequest)
	case errors.Is(err, workflow.ErrCommissionNotPayable):
		return pkg.NewDomainErrorSimple("COMMISSION_NOT_PAYABLE", "Commission can only be paid once the deal is complete", http.StatusConflict)
	case errors.Is(err, workflow.ErrInvalidApprovalType):
		return pkg.NewDomainErrorSimple("INVALID_APPROVAL_TYPE", "Invalid approval type", http.StatusBadRequest)
	case errors.Is(err, workflow.ErrInvalidSignature):
		return pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid signature", http.StatusBadRequest)
	case errors.Is(err, workflow.ErrUnlockReasonRequired):
		return pkg.NewDomainErrorSimple("UNLOCK_REASON_REQUIRED", "An unlock reason is required", http.StatusBadRequest)
	case errors.Is(err, request.ErrMissingOverride):
		return pkg.NewDomainErrorSimple("INVALID_OVERRIDE", "Override amount is required", http.StatusBadRequest).
			WithDetail("reason", "amount is required")
	case errors.Is(err, usecase.ErrInvalidActor):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid caller", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrDealNotFound):
		return pkg.NewDomainErrorSimple("DEAL_NOT_FOUND", "Deal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPinNotFound):
		return pkg.NewDomainErrorSimple("PIN_NOT_FOUND", "Pin not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPinAlreadyConverted):
		return pkg.NewDomainErrorSimple("PIN_ALREADY_CONVERTED", "Pin already converted to a deal", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidAssetKind):
		return pkg.NewDomainErrorSimple("INVALID_ASSET_KIND", "Invalid asset kind", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidDealID),
		errors.Is(err, usecase.ErrInvalidPinID),
		errors.Is(err, usecase.ErrHomeownerNameRequired),
		errors.Is(err, usecase.ErrInvalidAssetRefs),
		errors.Is(err, usecase.ErrNothingToMark):
		return newInvalidRequest()
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return newInvalidRequest()
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrDealNotInvoiced):
		return pkg.NewDomainErrorSimple("DEAL_NOT_INVOICED", "Deal has not been invoiced", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidPaymentAmount):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_AMOUNT", "Deal has no amount to request", http.StatusUnprocessableEntity)
	default:
		return mapWorkflowError(err)
	}
}

// readMPPayload accepts the raw Mercado Pago body or the {"mp_payload": ...}
// envelope. An empty body is an empty object.
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}
