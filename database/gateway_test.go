package database

import (
	"fmt"
	"testing"

	"timberyard-backend/models"

	"github.com/stretchr/testify/require"
)

var gwSeq int

// testGateway opens a cache-only gateway on a uniquely named in-memory
// sqlite database.
func testGateway(t *testing.T) *Gateway {
	t.Helper()
	gwSeq++
	dsn := fmt.Sprintf("file:gwtest%d?mode=memory&cache=shared", gwSeq)
	gw, err := Open("", dsn)
	require.NoError(t, err)
	return gw
}

func TestItemsFromCacheOnly(t *testing.T) {
	gw := testGateway(t)

	gw.SaveItem(models.ProductItem{Name: "Pine 4m", Code: "PN-4", Bundles: 3, BoardsPerBundle: 50})

	items, src := gw.Items()
	require.Equal(t, SourceCache, src, "cache-only gateway answers from cache")
	require.Len(t, items, 1)
	require.Equal(t, "PN-4", items[0].Code)
}

func TestSaveItemUpsertsByCode(t *testing.T) {
	gw := testGateway(t)

	gw.SaveItem(models.ProductItem{Name: "Pine 4m", Code: "PN-4", Bundles: 3, BoardsPerBundle: 50})
	gw.SaveItem(models.ProductItem{Name: "Pine 4m long", Code: "PN-4", Bundles: 0, BoardsPerBundle: 50})

	items, _ := gw.Items()
	require.Len(t, items, 1, "same code must not duplicate")
	require.Equal(t, "Pine 4m long", items[0].Name, "second save wins")
	// Zero-valued fields must persist too (full replace, not partial update).
	require.Equal(t, 0.0, items[0].Bundles)
}

func TestSaveClientUpsertsByName(t *testing.T) {
	gw := testGateway(t)

	gw.SaveClient(models.Client{Name: "Miller", Type: models.ClientTypeCash})
	gw.SaveClient(models.Client{Name: "Miller", Phone: "555-1234", Type: models.ClientTypeCredit})

	clients, _ := gw.Clients()
	require.Len(t, clients, 1, "same name must not duplicate")
	require.Equal(t, "555-1234", clients[0].Phone)
	require.Equal(t, models.ClientTypeCredit, clients[0].Type)
}

func TestSaveEmployeeUpsertsByName(t *testing.T) {
	gw := testGateway(t)

	gw.SaveEmployee(models.Employee{Name: "Ana", Salary: 900})
	gw.SaveEmployee(models.Employee{Name: "Ana", Salary: 1000, Advances: 50})

	employees, _ := gw.Employees()
	require.Len(t, employees, 1)
	require.Equal(t, 1000.0, employees[0].Salary)
	require.Equal(t, 50.0, employees[0].Advances)
}

func TestAddSaleIsIdempotentById(t *testing.T) {
	gw := testGateway(t)

	sale := models.Sale{Id: "s-1", InvoiceId: "INV-X", ItemName: "Pine", TotalPrice: 10}
	gw.AddSale(sale)
	gw.AddSale(sale)

	sales, _ := gw.Sales()
	require.Len(t, sales, 1, "re-adding same id must not duplicate")
}

func TestDeleteItem(t *testing.T) {
	gw := testGateway(t)

	gw.SaveItem(models.ProductItem{Id: "i-1", Name: "Pine", Code: "PN"})
	gw.DeleteItem("i-1")

	items, _ := gw.Items()
	require.Empty(t, items)
}

func TestWipeAllClearsEntities(t *testing.T) {
	gw := testGateway(t)

	gw.SaveItem(models.ProductItem{Name: "Pine", Code: "PN"})
	gw.SaveClient(models.Client{Name: "Miller"})
	gw.AddSale(models.Sale{Id: "s-1", InvoiceId: "INV-X"})
	gw.AddPurchase(models.Purchase{Id: "p-1", ItemId: "x"})
	gw.SaveEmployee(models.Employee{Name: "Ana"})
	gw.SaveUser(models.User{Username: "admin", Role: models.RoleAdmin})

	require.NoError(t, gw.WipeAll())

	items, _ := gw.Items()
	require.Empty(t, items)
	sales, _ := gw.Sales()
	require.Empty(t, sales)
	purchases, _ := gw.Purchases()
	require.Empty(t, purchases)
	clients, _ := gw.Clients()
	require.Empty(t, clients)
	employees, _ := gw.Employees()
	require.Empty(t, employees)

	// Operator accounts survive the wipe.
	_, err := gw.UserByUsername("admin")
	require.NoError(t, err)
}

func TestRecordAuditAndList(t *testing.T) {
	gw := testGateway(t)

	gw.RecordAudit("delete", "item", "i-1", "u-1", map[string]any{"reason": "test"})
	gw.RecordAudit("wipe", "all", "", "u-1", nil)

	logs, src := gw.AuditLogs(10)
	require.Equal(t, SourceCache, src)
	require.Len(t, logs, 2)
}
