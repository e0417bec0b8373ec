package leavebalance_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"go-hrms/internal/leavebalance"
	leavebalanceerrors "go-hrms/internal/leavebalance/errors"
	balanceMock "go-hrms/internal/leavebalance/mock"
)

func setupBalanceRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_AssignToUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := balanceMock.NewMockService(ctrl)
	handler := leavebalance.NewHandler(mockService)
	router := setupBalanceRouter()
	router.POST("/leave-types/:id/assign", handler.AssignToUsers)

	leaveTypeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		reqBody := leavebalance.AssignLeaveTypeRequest{
			UserIDs: []string{uuid.New().String()},
		}
		body, _ := json.Marshal(reqBody)

		mockService.EXPECT().
			AssignToUsers(gomock.Any(), leaveTypeID, gomock.Any()).
			Return([]leavebalance.LeaveBalanceResponse{{ID: uuid.New().String(), TotalAllocated: 12}}, nil)

		req := httptest.NewRequest(http.MethodPost, "/leave-types/"+leaveTypeID+"/assign", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("empty user list rejected before service", func(t *testing.T) {
		body := []byte(`{"user_ids": []}`)

		req := httptest.NewRequest(http.MethodPost, "/leave-types/"+leaveTypeID+"/assign", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.EXPECT().AssignToUsers(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	})

	t.Run("no eligible users", func(t *testing.T) {
		reqBody := leavebalance.AssignLeaveTypeRequest{
			UserIDs: []string{uuid.New().String()},
		}
		body, _ := json.Marshal(reqBody)

		mockService.EXPECT().
			AssignToUsers(gomock.Any(), leaveTypeID, gomock.Any()).
			Return(nil, leavebalanceerrors.ErrNoEligibleUsers)

		req := httptest.NewRequest(http.MethodPost, "/leave-types/"+leaveTypeID+"/assign", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_BulkAssign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := balanceMock.NewMockService(ctrl)
	handler := leavebalance.NewHandler(mockService)
	router := setupBalanceRouter()
	router.POST("/leave-balances/bulk-assign", handler.BulkAssign)

	t.Run("success", func(t *testing.T) {
		reqBody := leavebalance.BulkAssignRequest{
			UserIDs:      []string{uuid.New().String()},
			LeaveTypeIDs: []string{uuid.New().String()},
		}
		body, _ := json.Marshal(reqBody)

		mockService.EXPECT().
			BulkAssign(gomock.Any(), gomock.Any()).
			Return([]leavebalance.LeaveBalanceResponse{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/leave-balances/bulk-assign", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("no valid leave types", func(t *testing.T) {
		reqBody := leavebalance.BulkAssignRequest{
			UserIDs:      []string{uuid.New().String()},
			LeaveTypeIDs: []string{uuid.New().String()},
		}
		body, _ := json.Marshal(reqBody)

		mockService.EXPECT().
			BulkAssign(gomock.Any(), gomock.Any()).
			Return(nil, leavebalanceerrors.ErrNoLeaveTypesFound)

		req := httptest.NewRequest(http.MethodPost, "/leave-balances/bulk-assign", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_GetUserBalances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := balanceMock.NewMockService(ctrl)
	handler := leavebalance.NewHandler(mockService)
	router := setupBalanceRouter()
	router.GET("/leave-balances/users/:userId", handler.GetUserBalances)

	userID := uuid.New().String()

	t.Run("year filter forwarded", func(t *testing.T) {
		mockService.EXPECT().
			GetUserBalances(gomock.Any(), userID, 2025).
			Return([]leavebalance.LeaveBalanceResponse{{Year: 2025}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/leave-balances/users/"+userID+"?year=2025", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing year defaults to zero", func(t *testing.T) {
		mockService.EXPECT().
			GetUserBalances(gomock.Any(), userID, 0).
			Return([]leavebalance.LeaveBalanceResponse{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/leave-balances/users/"+userID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed year rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/leave-balances/users/"+userID+"?year=banana", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetUserBalanceByType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := balanceMock.NewMockService(ctrl)
	handler := leavebalance.NewHandler(mockService)
	router := setupBalanceRouter()
	router.GET("/leave-balances/users/:userId/types/:leaveTypeId", handler.GetUserBalanceByType)

	userID := uuid.New().String()
	leaveTypeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockService.EXPECT().
			GetUserBalanceByType(gomock.Any(), userID, leaveTypeID, 0).
			Return(leavebalance.LeaveBalanceResponse{RemainingDays: 7}, nil)

		req := httptest.NewRequest(http.MethodGet, "/leave-balances/users/"+userID+"/types/"+leaveTypeID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, float64(7), res["data"].(map[string]interface{})["remaining_days"])
	})

	t.Run("not found", func(t *testing.T) {
		mockService.EXPECT().
			GetUserBalanceByType(gomock.Any(), userID, leaveTypeID, 0).
			Return(leavebalance.LeaveBalanceResponse{}, leavebalanceerrors.ErrLeaveBalanceNotFound)

		req := httptest.NewRequest(http.MethodGet, "/leave-balances/users/"+userID+"/types/"+leaveTypeID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
