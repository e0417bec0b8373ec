package accrual_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"go-hrms/internal/accrual"
	accrualMock "go-hrms/internal/accrual/mock"
)

func setupAccrualRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_RunMonthly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := accrualMock.NewMockService(ctrl)
	handler := accrual.NewHandler(mockService)
	router := setupAccrualRouter()
	router.POST("/leave-accruals/monthly/run", handler.RunMonthly)

	t.Run("explicit as_of forwarded", func(t *testing.T) {
		expected := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
		mockService.EXPECT().
			RunMonthlyAccrual(gomock.Any(), expected).
			Return(accrual.RunSummary{Period: "2026-07", RowsUpdated: 3}, nil)

		req := httptest.NewRequest(http.MethodPost, "/leave-accruals/monthly/run?as_of=2026-07-01", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"rows_updated":3`)
	})

	t.Run("malformed as_of rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/leave-accruals/monthly/run?as_of=July", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.EXPECT().RunMonthlyAccrual(gomock.Any(), gomock.Any()).Times(0)
	})
}

func TestHandler_RunYearEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := accrualMock.NewMockService(ctrl)
	handler := accrual.NewHandler(mockService)
	router := setupAccrualRouter()
	router.POST("/leave-accruals/year-end/run", handler.RunYearEnd)

	mockService.EXPECT().
		RunYearEndCarryForward(gomock.Any(), gomock.Any()).
		Return(accrual.RunSummary{Period: "2026", RowsCreated: 2}, nil)

	req := httptest.NewRequest(http.MethodPost, "/leave-accruals/year-end/run", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
