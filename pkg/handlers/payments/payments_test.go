package payments_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakib/coinledger/pkg/api"
	"github.com/sakib/coinledger/pkg/config"
	handler "github.com/sakib/coinledger/pkg/handlers/payments"
	"github.com/sakib/coinledger/pkg/models"
	"github.com/sakib/coinledger/pkg/payments"
	"github.com/sakib/coinledger/pkg/storage"
	"github.com/sakib/coinledger/pkg/storage/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newHandler(mockStorage *mocks.Storage) *handler.PaymentsHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	workflow := payments.New(mockStorage, config.DefaultEconomy(), logger)
	return handler.NewPaymentsHandler(workflow, mockStorage)
}

func TestRequestDeposit(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		created := &models.Payment{
			Id: "pay-1", Reference: "LDG-1-ABCDEF", UserId: 1,
			Type: models.DEPOSIT, Status: models.PENDING,
			Amount: decimal.NewFromInt(1000), NetAmount: decimal.NewFromInt(1000),
		}
		mockStorage.On("AddPayment", mock.Anything, mock.Anything).Return(created, nil)

		h := newHandler(mockStorage)
		body, _ := json.Marshal(api.DepositRequest{UserId: 1, Amount: decimal.NewFromInt(1000), Method: "nagod"})
		req := httptest.NewRequest(http.MethodPost, "/payments/deposits", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.RequestDeposit(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var got api.PaymentResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.True(t, got.Success)
		require.NotNil(t, got.Payment)
		assert.Equal(t, "PENDING", got.Payment.Status)
	})

	t.Run("Validation Failure Answers 422", func(t *testing.T) {
		h := newHandler(new(mocks.Storage))
		body, _ := json.Marshal(api.DepositRequest{UserId: 1, Amount: decimal.NewFromInt(100), Method: "hawala"})
		req := httptest.NewRequest(http.MethodPost, "/payments/deposits", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.RequestDeposit(rr, req)

		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		var got api.PaymentResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.False(t, got.Success)
		assert.Contains(t, got.Message, "not supported")
	})

	t.Run("Invalid Body", func(t *testing.T) {
		h := newHandler(new(mocks.Storage))
		req := httptest.NewRequest(http.MethodPost, "/payments/deposits", bytes.NewReader([]byte("{")))
		rr := httptest.NewRecorder()

		h.RequestDeposit(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRequestWithdraw(t *testing.T) {
	t.Run("Insufficient Balance Answers 422", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("AddPayment", mock.Anything, mock.Anything).Return(nil, storage.ErrInsufficientFunds)

		h := newHandler(mockStorage)
		body, _ := json.Marshal(api.WithdrawRequest{
			UserId: 1, Amount: decimal.NewFromInt(500), Method: "nagod", Destination: "01700000099",
		})
		req := httptest.NewRequest(http.MethodPost, "/payments/withdrawals", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.RequestWithdraw(rr, req)

		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		var got api.PaymentResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "insufficient balance", got.Message)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		confirmed := &models.Payment{Id: "pay-1", Reference: "LDG-1-ABCDEF", Status: models.COMPLETED}
		mockStorage.On("ConfirmPayment", mock.Anything, "pay-1", "admin").Return(confirmed, nil)

		h := newHandler(mockStorage)
		body, _ := json.Marshal(api.ConfirmRequest{Confirmer: "admin"})
		req := httptest.NewRequest(http.MethodPost, "/payments/pay-1/confirm", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Confirm(rr, req, "pay-1")

		require.Equal(t, http.StatusOK, rr.Code)
		var got api.PaymentResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.True(t, got.Success)
		assert.Equal(t, "COMPLETED", got.Payment.Status)
	})

	t.Run("Already Processed Answers 422", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ConfirmPayment", mock.Anything, "pay-1", "admin").
			Return(nil, storage.ErrInvalidTransition)

		h := newHandler(mockStorage)
		body, _ := json.Marshal(api.ConfirmRequest{Confirmer: "admin"})
		req := httptest.NewRequest(http.MethodPost, "/payments/pay-1/confirm", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Confirm(rr, req, "pay-1")

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestGetPaymentById(t *testing.T) {
	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetPayment", mock.Anything, "missing").Return(nil, storage.ErrNotFound)

		h := newHandler(mockStorage)
		req := httptest.NewRequest(http.MethodGet, "/payments/missing", nil)
		rr := httptest.NewRecorder()

		h.GetPaymentById(rr, req, "missing")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListMethods(t *testing.T) {
	h := newHandler(new(mocks.Storage))
	req := httptest.NewRequest(http.MethodGet, "/payments/methods", nil)
	rr := httptest.NewRecorder()

	h.ListMethods(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []payments.Method
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.NotEmpty(t, got)
}
