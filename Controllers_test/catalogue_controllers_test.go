package Controllers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	s := setupTestServer(t)
	code, resp := s.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", resp.Message)
}

func TestTables(t *testing.T) {
	s := setupTestServer(t)

	s.createID(t, "/api/tables", map[string]string{"name": "Room 1", "type": "private_room"})
	s.createID(t, "/api/tables", map[string]string{"name": "Hall 1", "type": "hall"})

	code, resp := s.do(t, http.MethodPost, "/api/tables", map[string]string{"name": "Roof", "type": "terrace"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_input", resp.ErrorCode)

	code, resp = s.do(t, http.MethodPost, "/api/tables", map[string]string{"type": "hall"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = s.do(t, http.MethodGet, "/api/tables", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "List of tables", resp.Message)
	var tables []struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	decodeData(t, resp, &tables)
	require.Len(t, tables, 2)
	assert.Equal(t, "Room 1", tables[0].Name)
	assert.Equal(t, "idle", tables[0].Status)
}

func TestBillingMethods(t *testing.T) {
	s := setupTestServer(t)

	id := s.createID(t, "/api/billing-methods", map[string]interface{}{
		"name": "Afternoon", "kind": "package",
		"included_hours": "4", "package_price": "80", "overage_rate_per_hour": "20",
	})

	code, resp := s.do(t, http.MethodPost, "/api/billing-methods", map[string]interface{}{
		"name": "Mixed", "kind": "hourly", "rate_per_hour": "30", "price": "40",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_input", resp.ErrorCode)

	code, resp = s.do(t, http.MethodGet, "/api/billing-methods", nil)
	require.Equal(t, http.StatusOK, code)
	var methods []struct {
		ID      uint   `json:"id"`
		Kind    string `json:"kind"`
		Display string `json:"display"`
	}
	decodeData(t, resp, &methods)
	require.Len(t, methods, 1)
	assert.Equal(t, "package", methods[0].Kind)
	assert.Equal(t, "¥80.00/4h +¥20.00/hour", methods[0].Display)

	path := "/api/billing-methods/" + strconv.Itoa(int(id))
	code, resp = s.do(t, http.MethodPut, path, map[string]interface{}{
		"name": "Per visit", "kind": "session", "price": "40",
	})
	require.Equal(t, http.StatusOK, code, resp.Message)
	var updated struct {
		Kind    string `json:"kind"`
		Display string `json:"display"`
	}
	decodeData(t, resp, &updated)
	assert.Equal(t, "fixed", updated.Kind)
	assert.Equal(t, "¥40.00/session", updated.Display)

	code, resp = s.do(t, http.MethodPut, "/api/billing-methods/999", map[string]interface{}{
		"name": "x", "kind": "fixed", "price": "40",
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "billing_method_not_found", resp.ErrorCode)

	tableID := s.createID(t, "/api/tables", map[string]string{"name": "Room 1", "type": "private_room"})
	startSession(t, s, tableID, id)

	code, resp = s.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "billing_method_in_use", resp.ErrorCode)

	unused := s.createID(t, "/api/billing-methods", map[string]interface{}{
		"name": "Hourly", "kind": "hourly", "rate_per_hour": "30",
	})
	code, _ = s.do(t, http.MethodDelete, "/api/billing-methods/"+strconv.Itoa(int(unused)), nil)
	assert.Equal(t, http.StatusOK, code)

	code, resp = s.do(t, http.MethodDelete, "/api/billing-methods/0", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_input", resp.ErrorCode)
}

func TestProducts(t *testing.T) {
	s := setupTestServer(t)

	s.createID(t, "/api/products", map[string]interface{}{"name": "Tea", "price": 15})

	code, resp := s.do(t, http.MethodPost, "/api/products", map[string]interface{}{"name": "Free", "price": "0"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_input", resp.ErrorCode)

	code, resp = s.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, code)
	var products []struct {
		Name string `json:"name"`
	}
	decodeData(t, resp, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Tea", products[0].Name)

	code, resp = s.do(t, http.MethodGet, "/api/products", nil, "X-Tenant-ID", "2")
	require.Equal(t, http.StatusOK, code)
	products = nil
	decodeData(t, resp, &products)
	assert.Empty(t, products)
}

func TestCreateForUnknownTenant(t *testing.T) {
	s := setupTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/tables", map[string]string{"name": "Room 1", "type": "hall"}, "X-Tenant-ID", "99")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "tenant_not_found", resp.ErrorCode)

	code, resp = s.do(t, http.MethodPost, "/api/products", map[string]interface{}{"name": "Tea", "price": "15"}, "X-Tenant-ID", "99")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "tenant_not_found", resp.ErrorCode)
}

func TestSubCentAmountsRejected(t *testing.T) {
	s := setupTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/billing-methods", map[string]interface{}{
		"name": "Odd", "kind": "hourly", "rate_per_hour": "10.125",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_input", resp.ErrorCode)

	code, resp = s.do(t, http.MethodPost, "/api/products", map[string]interface{}{"name": "Tea", "price": "15.555"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_input", resp.ErrorCode)
}
