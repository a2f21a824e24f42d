package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnoldart/shophub/internal/checkout"
	"github.com/arnoldart/shophub/internal/domain"
)

// checkouterMock implements Checkouter for testing
type checkouterMock struct {
	order *domain.Order
	err   error

	gotUserID  string
	gotRequest checkout.SubmitRequest
}

func (m *checkouterMock) Submit(_ context.Context, userID string, req checkout.SubmitRequest) (*domain.Order, error) {
	m.gotUserID = userID
	m.gotRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func validSubmitBody() []byte {
	body, _ := json.Marshal(SubmitRequestDTO{
		FullName:       "Budi Santoso",
		Email:          "budi@example.com",
		Phone:          "081234567890",
		Address:        "Jl. Sudirman No. 1",
		City:           "Jakarta",
		Province:       "DKI Jakarta",
		PostalCode:     "10110",
		ShippingMethod: "express",
		PaymentMethod:  "e-wallet",
	})
	return body
}

func TestSubmit_Success(t *testing.T) {
	mock := &checkouterMock{order: &domain.Order{
		ID:         "order-1",
		UserID:     "sid1",
		Status:     domain.OrderStatusConfirmed,
		GrandTotal: 2_124_000,
		Currency:   "IDR",
	}}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader(validSubmitBody())), "sid1")

	handler.Submit(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var response OrderResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "order-1", response.Order.ID)
	assert.Equal(t, domain.OrderStatusConfirmed, response.Order.Status)
	assert.Equal(t, "Rp 2.124.000", response.FormattedTotal)

	assert.Equal(t, "sid1", mock.gotUserID)
	assert.Equal(t, domain.ShippingExpress, mock.gotRequest.ShippingTier)
	assert.Equal(t, domain.PaymentEWallet, mock.gotRequest.PaymentMethod)
	assert.Equal(t, "Budi Santoso", mock.gotRequest.Address.FullName)
}

func TestSubmit_Unauthorized(t *testing.T) {
	handler := NewCheckoutHandler(&checkouterMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/", bytes.NewReader(validSubmitBody()))

	handler.Submit(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestSubmit_ValidationError(t *testing.T) {
	mock := &checkouterMock{err: &checkout.ValidationError{Field: "city", Reason: "required"}}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader(validSubmitBody())), "sid1")

	handler.Submit(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "validation_failed", response.Code)
}

func TestSubmit_EmptyCart(t *testing.T) {
	mock := &checkouterMock{err: checkout.ErrEmptyCart}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader(validSubmitBody())), "sid1")

	handler.Submit(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "validation_failed", response.Code)
}

func TestSubmit_PaymentDeclined(t *testing.T) {
	mock := &checkouterMock{err: checkout.ErrPaymentDeclined}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader(validSubmitBody())), "sid1")

	handler.Submit(recorder, request)

	require.Equal(t, http.StatusPaymentRequired, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "payment_declined", response.Code)
}

func TestSubmit_Timeout(t *testing.T) {
	mock := &checkouterMock{err: context.DeadlineExceeded}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader(validSubmitBody())), "sid1")

	handler.Submit(recorder, request)

	assert.Equal(t, http.StatusGatewayTimeout, recorder.Code)
}

func TestSubmit_InvalidBody(t *testing.T) {
	handler := NewCheckoutHandler(&checkouterMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader([]byte("not json"))), "sid1")

	handler.Submit(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
