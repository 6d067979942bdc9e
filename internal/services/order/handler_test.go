package order

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-meals/internal/catalog"
	"hospital-meals/internal/logger"
	"hospital-meals/internal/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.New("meal-delivery-test")
	service := NewService(newTestCatalog(t), log)
	handler := NewHandler(service, log)

	srv := httptest.NewServer(handler.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(catalog.DateFormat)
}

func TestGetMenu(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/menu")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []catalog.MenuItem
	decodeBody(t, resp, &items)
	assert.Len(t, items, 4)
}

func TestGetMenuItem_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/menu/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateQuantity_BulkDiscountFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/cart/items/meal1", models.UpdateQuantityRequest{Quantity: 12})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cart models.CartResponse
	decodeBody(t, resp, &cart)

	assert.Equal(t, 12, cart.TotalQuantity)
	assertDecimalEqual(t, "78.00", cart.BaseTotal)
	assertDecimalEqual(t, "3.90", cart.SavedAmount)
	assertDecimalEqual(t, "74.10", cart.Subtotal)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "meal1", cart.Items[0].ItemID)
}

func TestUpdateQuantity_RejectsNegative(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/cart/items/meal1", models.UpdateQuantityRequest{Quantity: -1})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateQuantity_RequiresJSONContentType(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/cart/items/meal1", bytes.NewBufferString(`{"quantity":1}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSetReferralCode_ReportsValidity(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/session/referral-code", models.SetReferralCodeRequest{Code: "354zan"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.ReferralCodeResponse
	decodeBody(t, resp, &result)
	assert.True(t, result.Valid)
	assert.Equal(t, "354zan", result.Code)

	resp = doJSON(t, http.MethodPut, srv.URL+"/session/referral-code", models.SetReferralCodeRequest{Code: "wrong"})
	decodeBody(t, resp, &result)
	assert.False(t, result.Valid)
}

func TestSetHospital_RejectsUnknown(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/session/hospital", models.SetHospitalRequest{Hospital: "ST ELSEWHERE"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, srv.URL+"/session/hospital", models.SetHospitalRequest{Hospital: "WOODLANDS HEALTH"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session models.SessionResponse
	decodeBody(t, resp, &session)
	assert.Equal(t, "WOODLANDS HEALTH", session.Hospital)
}

func TestSetGlobalDate_RejectsPastDate(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/session/date", models.SetDateRequest{Date: "2020-01-01"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSetGlobalDate_SwitchesCartContext(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/cart/items/meal2", models.UpdateQuantityRequest{Quantity: 2})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, srv.URL+"/session/date", models.SetDateRequest{Date: futureDate(5)})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cart models.CartResponse
	decodeBody(t, resp, &cart)
	assert.Empty(t, cart.Items)
	assert.Equal(t, futureDate(5), cart.DeliveryDate)
}

func TestSetItemDate(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/cart/items/meal1", models.UpdateQuantityRequest{Quantity: 1})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, srv.URL+"/cart/items/meal1/date", models.SetDateRequest{Date: futureDate(7)})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cart models.CartResponse
	decodeBody(t, resp, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, futureDate(7), cart.Items[0].DeliveryDate)
}

func TestPlaceOrder_EmptyCartRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/orders", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlaceOrder_Flow(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/cart/items/meal4", models.UpdateQuantityRequest{Quantity: 6})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var order models.PlaceOrderResponse
	decodeBody(t, resp, &order)
	assert.Equal(t, "scheduled", order.Status)
	assert.Equal(t, 42, order.PointsEarned)
	assert.Equal(t, 42, order.LoyaltyPoints)
	assertDecimalEqual(t, "42.00", order.Subtotal)
	assert.Regexp(t, `^ORD_\d{8}_\d{3}$`, order.OrderNumber)

	// Cart is cleared after checkout
	getResp, err := http.Get(srv.URL + "/cart")
	require.NoError(t, err)
	var cart models.CartResponse
	decodeBody(t, getResp, &cart)
	assert.Empty(t, cart.Items)

	// Loyalty balance survives the clear
	getResp, err = http.Get(srv.URL + "/session")
	require.NoError(t, err)
	var session models.SessionResponse
	decodeBody(t, getResp, &session)
	assert.Equal(t, 42, session.LoyaltyPoints)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
