package payments

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sakib/coinledger/pkg/api"
	"github.com/sakib/coinledger/pkg/mapping"
	"github.com/sakib/coinledger/pkg/payments"
	"github.com/sakib/coinledger/pkg/storage"
)

// PaymentsHandler holds the dependencies for payment handlers.
type PaymentsHandler struct {
	Workflow *payments.Manager
	Store    storage.PaymentReader
}

// NewPaymentsHandler creates a new PaymentsHandler.
func NewPaymentsHandler(workflow *payments.Manager, store storage.PaymentReader) *PaymentsHandler {
	return &PaymentsHandler{Workflow: workflow, Store: store}
}

// RequestDeposit handles a deposit request.
func (h *PaymentsHandler) RequestDeposit(w http.ResponseWriter, r *http.Request) {
	var req api.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result := h.Workflow.RequestDeposit(r.Context(), req.UserId, req.Amount, req.Method)
	writeResult(w, result, http.StatusCreated)
}

// RequestWithdraw handles a withdrawal request.
func (h *PaymentsHandler) RequestWithdraw(w http.ResponseWriter, r *http.Request) {
	var req api.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result := h.Workflow.RequestWithdraw(r.Context(), req.UserId, req.Amount, req.Method, req.Destination)
	writeResult(w, result, http.StatusCreated)
}

// Confirm handles confirming a PENDING payment.
func (h *PaymentsHandler) Confirm(w http.ResponseWriter, r *http.Request, paymentID string) {
	var req api.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result := h.Workflow.Confirm(r.Context(), paymentID, req.Confirmer)
	writeResult(w, result, http.StatusOK)
}

// Reject handles rejecting a PENDING payment.
func (h *PaymentsHandler) Reject(w http.ResponseWriter, r *http.Request, paymentID string) {
	var req api.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result := h.Workflow.Reject(r.Context(), paymentID, req.Confirmer, req.Reason)
	writeResult(w, result, http.StatusOK)
}

// GetPaymentById handles retrieving a payment.
func (h *PaymentsHandler) GetPaymentById(w http.ResponseWriter, r *http.Request, paymentID string) {
	domainPayment, err := h.Store.GetPayment(r.Context(), paymentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Payment not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve payment: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiPayment := mapping.ToApiPayment(domainPayment)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiPayment); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListUserPayments handles retrieving a user's payment history.
func (h *PaymentsHandler) ListUserPayments(w http.ResponseWriter, r *http.Request, userID int64) {
	domainPayments, err := h.Workflow.History(r.Context(), userID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve payments: %v", err), http.StatusInternalServerError)
		return
	}

	apiPayments := make([]*api.Payment, len(domainPayments))
	for i, p := range domainPayments {
		apiPayments[i] = mapping.ToApiPayment(&p)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiPayments); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListMethods handles retrieving the supported payment methods.
func (h *PaymentsHandler) ListMethods(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.Workflow.Methods()); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// writeResult encodes a workflow result. A failed result keeps the structured
// body but answers 422, matching the never-throw contract of the workflow.
func writeResult(w http.ResponseWriter, result payments.Result, successStatus int) {
	body := api.PaymentResult{Success: result.Success, Message: result.Message}
	if result.Payment != nil {
		body.Payment = mapping.ToApiPayment(result.Payment)
	}

	status := successStatus
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
