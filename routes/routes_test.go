package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"

	"timberyard-backend/database"
	"timberyard-backend/middlewares"
	"timberyard-backend/models"
	"timberyard-backend/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET_KEY", "routes-test-secret")
	os.Exit(m.Run())
}

var appSeq int

type testApp struct {
	app        *fiber.App
	store      *store.Store
	adminToken string
	salesToken string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	appSeq++
	dsn := fmt.Sprintf("file:routestest%d?mode=memory&cache=shared", appSeq)
	gw, err := database.Open("", dsn)
	require.NoError(t, err)

	admin := models.User{Id: "u-admin", Username: "admin", Role: models.RoleAdmin}
	admin.SetPassword("admin-pass")
	gw.SaveUser(admin)
	seller := models.User{Id: "u-sales", Username: "sales", Role: models.RoleSales}
	seller.SetPassword("sales-pass")
	gw.SaveUser(seller)

	s := store.New(gw)
	s.Load()

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	Register(app, s, gw)

	adminToken, err := middlewares.GenerateJWT(admin.Id, admin.Role)
	require.NoError(t, err)
	salesToken, err := middlewares.GenerateJWT(seller.Id, seller.Role)
	require.NoError(t, err)

	return &testApp{app: app, store: s, adminToken: adminToken, salesToken: salesToken}
}

func (ta *testApp) request(t *testing.T, method, path, token string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(blob)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	blob, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, blob
}

func (ta *testApp) seedItem(t *testing.T, code string, bundles float64) string {
	t.Helper()
	item := ta.store.SaveItem(models.ProductItem{
		Name: "Pine 4m", Code: code, Bundles: bundles, BoardsPerBundle: 50,
		BuyPrice: 10, SellPrice: 15,
	})
	return item.Id
}

func TestLogin(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.request(t, "POST", "/api/login", "", fiber.Map{
		"username": "admin", "password": "admin-pass",
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "body: %s", body)

	var out struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	require.Equal(t, models.RoleAdmin, out.User.Role)

	resp, _ = ta.request(t, "POST", "/api/login", "", fiber.Map{
		"username": "admin", "password": "wrong",
	}, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = ta.request(t, "POST", "/api/login", "", fiber.Map{
		"username": "ghost", "password": "whatever",
	}, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	ta := newTestApp(t)

	resp, _ := ta.request(t, "GET", "/api/inventory", "", nil, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = ta.request(t, "GET", "/api/inventory", "not-a-jwt", nil, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSalesRoleCannotDeleteOrReport(t *testing.T) {
	ta := newTestApp(t)
	id := ta.seedItem(t, "PN-4", 10)

	resp, _ := ta.request(t, "DELETE", "/api/inventory/"+id, ta.salesToken, nil, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = ta.request(t, "GET", "/api/reports/summary", ta.salesToken, nil, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = ta.request(t, "GET", "/api/employees", ta.salesToken, nil, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// But reading inventory and booking sales is allowed.
	resp, _ = ta.request(t, "GET", "/api/inventory", ta.salesToken, nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSubmitSaleBatchOverHTTP(t *testing.T) {
	ta := newTestApp(t)
	id := ta.seedItem(t, "PN-4", 10)

	resp, body := ta.request(t, "POST", "/api/sales", ta.salesToken, []fiber.Map{
		{"item_id": id, "quantity": 2, "unit_type": "bundle", "unit_price": 100, "client_name": "Miller"},
		{"item_id": id, "quantity": 10, "unit_type": "board", "unit_price": 3, "client_name": "Miller"},
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "body: %s", body)

	var out struct {
		InvoiceId string        `json:"invoice_id"`
		Lines     []models.Sale `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.InvoiceId)
	require.Len(t, out.Lines, 2)

	// Shortage rejects with 409 and the availability detail.
	resp, body = ta.request(t, "POST", "/api/sales", ta.salesToken, []fiber.Map{
		{"item_id": id, "quantity": 9999, "unit_type": "board", "unit_price": 3, "client_name": "Miller"},
	}, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode, "body: %s", body)

	// Validation failure on a bad unit type.
	resp, _ = ta.request(t, "POST", "/api/sales", ta.salesToken, []fiber.Map{
		{"item_id": id, "quantity": 1, "unit_type": "pallet", "unit_price": 3, "client_name": "Miller"},
	}, nil)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestIdempotentSaleSubmission(t *testing.T) {
	ta := newTestApp(t)
	id := ta.seedItem(t, "PN-4", 10)

	payload := []fiber.Map{
		{"item_id": id, "quantity": 1, "unit_type": "bundle", "unit_price": 100, "client_name": "Miller"},
	}
	headers := map[string]string{"Idempotency-Key": "batch-1"}

	resp, first := ta.request(t, "POST", "/api/sales", ta.salesToken, payload, headers)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, second := ta.request(t, "POST", "/api/sales", ta.salesToken, payload, headers)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.Equal(t, string(first), string(second), "replay returns the stored response")
	require.Len(t, ta.store.Sales(), 1, "replay must not book twice")

	// Same key with a different body is a conflict.
	resp, _ = ta.request(t, "POST", "/api/sales", ta.salesToken, []fiber.Map{
		{"item_id": id, "quantity": 2, "unit_type": "bundle", "unit_price": 100, "client_name": "Miller"},
	}, headers)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestInventoryCreateAndInvoicesView(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.request(t, "POST", "/api/inventory", ta.adminToken, []fiber.Map{
		{"name": "Pine 4m", "code": "PN-4", "bundles": 5, "boards_per_bundle": 50, "buy_price": 10, "sell_price": 15},
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "body: %s", body)

	var created []models.ProductItem
	require.NoError(t, json.Unmarshal(body, &created))
	require.Len(t, created, 1)
	require.NotEmpty(t, created[0].Id)

	_, err := ta.store.SubmitSaleBatch([]models.Sale{
		{ItemId: created[0].Id, Quantity: 1, UnitType: models.UnitBundle, UnitPrice: 100, ClientName: "Miller"},
	})
	require.NoError(t, err)

	resp, body = ta.request(t, "GET", "/api/invoices", ta.salesToken, nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var statements []struct {
		Name          string  `json:"name"`
		TotalInvoices int     `json:"total_invoices"`
		TotalSpent    float64 `json:"total_spent"`
	}
	require.NoError(t, json.Unmarshal(body, &statements))
	require.Len(t, statements, 1)
	require.Equal(t, "Miller", statements[0].Name)
	require.Equal(t, 100.0, statements[0].TotalSpent)
}

func TestAdminWipe(t *testing.T) {
	ta := newTestApp(t)
	ta.seedItem(t, "PN-4", 10)

	resp, _ := ta.request(t, "POST", "/api/admin/wipe", ta.adminToken, fiber.Map{"confirm": "yes"}, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Len(t, ta.store.Inventory(), 1, "data must not move before confirmation")

	resp, _ = ta.request(t, "POST", "/api/admin/wipe", ta.adminToken, fiber.Map{"confirm": "WIPE"}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Empty(t, ta.store.Inventory())

	resp, _ = ta.request(t, "POST", "/api/admin/wipe", ta.salesToken, fiber.Map{"confirm": "WIPE"}, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestStatusEndpoint(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.request(t, "GET", "/api/status", ta.salesToken, nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		RemoteConnected bool              `json:"remote_connected"`
		Sources         map[string]string `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.False(t, out.RemoteConnected, "no remote configured")
	require.Equal(t, "cache", out.Sources["inventory"])
}

func TestEmployeeAdvanceOverHTTP(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.request(t, "POST", "/api/employees", ta.adminToken, fiber.Map{
		"name": "Ana", "position": "Foreman", "salary": 1000,
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "body: %s", body)

	var ana models.Employee
	require.NoError(t, json.Unmarshal(body, &ana))
	require.NotEmpty(t, ana.Id)

	resp, body = ta.request(t, "POST", "/api/employees/"+ana.Id+"/advances", ta.adminToken, fiber.Map{
		"amount": 150,
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "body: %s", body)

	var updated models.Employee
	require.NoError(t, json.Unmarshal(body, &updated))
	require.Equal(t, 150.0, updated.Advances)
}
