package users_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sakib/coinledger/pkg/api"
	"github.com/sakib/coinledger/pkg/handlers/users"
	"github.com/sakib/coinledger/pkg/models"
	"github.com/sakib/coinledger/pkg/storage"
	"github.com/sakib/coinledger/pkg/storage/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		created := &models.User{
			Id: 1, Username: "sadia", FirstName: "Sadia",
			Balance: decimal.Zero, Coins: 500, CreatedAt: time.Now().UTC(),
		}
		mockStorage.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Id == 1 && u.Username == "sadia"
		})).Return(created, nil)

		handler := users.NewUsersHandler(mockStorage)
		body, _ := json.Marshal(api.NewUser{Id: 1, Username: "sadia", FirstName: "Sadia"})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateUser(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var got api.User
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(1), got.Id)
		assert.Equal(t, int64(500), got.Coins)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Already Exists", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateUser", mock.Anything, mock.Anything).Return(nil, storage.ErrAlreadyExists)

		handler := users.NewUsersHandler(mockStorage)
		body, _ := json.Marshal(api.NewUser{Id: 1})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateUser(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		handler := users.NewUsersHandler(new(mocks.Storage))
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte("{not json")))
		rr := httptest.NewRecorder()

		handler.CreateUser(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetUserById(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetUser", mock.Anything, int64(7)).
			Return(&models.User{Id: 7, Username: "rahim", Coins: 120}, nil)

		handler := users.NewUsersHandler(mockStorage)
		req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
		rr := httptest.NewRecorder()

		handler.GetUserById(rr, req, 7)

		require.Equal(t, http.StatusOK, rr.Code)
		var got api.User
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "rahim", got.Username)
		assert.Equal(t, int64(120), got.Coins)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetUser", mock.Anything, int64(99)).Return(nil, storage.ErrNotFound)

		handler := users.NewUsersHandler(mockStorage)
		req := httptest.NewRequest(http.MethodGet, "/users/99", nil)
		rr := httptest.NewRecorder()

		handler.GetUserById(rr, req, 99)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		name := "new_name"
		mockStorage.On("UpdateUser", mock.Anything, int64(1), models.UserUpdate{Username: &name}).
			Return(&models.User{Id: 1, Username: name}, nil)

		handler := users.NewUsersHandler(mockStorage)
		body, _ := json.Marshal(api.UpdateUser{Username: &name})
		req := httptest.NewRequest(http.MethodPatch, "/users/1", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.UpdateUser(rr, req, 1)

		require.Equal(t, http.StatusOK, rr.Code)
		var got api.User
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "new_name", got.Username)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("UpdateUser", mock.Anything, int64(99), mock.Anything).Return(nil, storage.ErrNotFound)

		handler := users.NewUsersHandler(mockStorage)
		req := httptest.NewRequest(http.MethodPatch, "/users/99", bytes.NewReader([]byte(`{}`)))
		rr := httptest.NewRecorder()

		handler.UpdateUser(rr, req, 99)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestClaimDaily(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		after := &models.User{Id: 1, Coins: 600, DailyStreak: 3}
		mockStorage.On("ClaimDailyBonus", mock.Anything, int64(1)).Return(after, int64(100), nil)

		handler := users.NewUsersHandler(mockStorage)
		req := httptest.NewRequest(http.MethodPost, "/users/1/daily", nil)
		rr := httptest.NewRecorder()

		handler.ClaimDaily(rr, req, 1)

		require.Equal(t, http.StatusOK, rr.Code)
		var got api.DailyBonusResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.True(t, got.Success)
		assert.Equal(t, int64(100), got.Coins)
		require.NotNil(t, got.User)
		assert.Equal(t, 3, got.User.DailyStreak)
	})

	t.Run("Already Claimed Today", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ClaimDailyBonus", mock.Anything, int64(1)).
			Return(nil, int64(0), storage.ErrLimitExceeded)

		handler := users.NewUsersHandler(mockStorage)
		req := httptest.NewRequest(http.MethodPost, "/users/1/daily", nil)
		rr := httptest.NewRecorder()

		handler.ClaimDaily(rr, req, 1)

		require.Equal(t, http.StatusOK, rr.Code)
		var got api.DailyBonusResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.False(t, got.Success)
		assert.Contains(t, got.Message, "already claimed")
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ClaimDailyBonus", mock.Anything, int64(99)).
			Return(nil, int64(0), storage.ErrNotFound)

		handler := users.NewUsersHandler(mockStorage)
		req := httptest.NewRequest(http.MethodPost, "/users/99/daily", nil)
		rr := httptest.NewRecorder()

		handler.ClaimDaily(rr, req, 99)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
