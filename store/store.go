// Package store owns the in-memory working state of the application: the
// five entity collections the UI renders from. Mutations go through the
// pure ledger/invoicing functions first, then fan out to the persistence
// gateway as fire-and-forget writes. Memory is the source of truth for
// rendering; persistence lags behind it.
package store

import (
	"fmt"
	"log"
	"sync"
	"time"

	"timberyard-backend/database"
	"timberyard-backend/invoicing"
	"timberyard-backend/ledger"
	"timberyard-backend/models"
	"timberyard-backend/utils"

	"github.com/google/uuid"
)

// DeletedItemLabel is what a dangling item reference resolves to.
const DeletedItemLabel = "deleted item"

type Store struct {
	mu sync.Mutex
	gw *database.Gateway

	inventory []models.ProductItem
	sales     []models.Sale
	purchases []models.Purchase
	clients   []models.Client
	employees []models.Employee

	sources map[string]database.Source
}

func New(gw *database.Gateway) *Store {
	return &Store{
		gw:      gw,
		sources: make(map[string]database.Source),
	}
}

// Load populates every collection from the gateway and remembers which
// store answered, for the UI sync indicator.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inventory, s.sources["inventory"] = s.gw.Items()
	s.sales, s.sources["sales"] = s.gw.Sales()
	s.purchases, s.sources["purchases"] = s.gw.Purchases()
	s.clients, s.sources["clients"] = s.gw.Clients()
	s.employees, s.sources["employees"] = s.gw.Employees()

	for entity, src := range s.sources {
		if src != database.SourceRemote {
			log.Printf("loaded %s from %s", entity, src)
		}
	}
}

// Sources reports, per entity, where the last load was served from.
func (s *Store) Sources() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.sources))
	for entity, src := range s.sources {
		out[entity] = src.String()
	}
	return out
}

// ---- read accessors (copies, so callers can't mutate shared state) ----

func (s *Store) Inventory() []models.ProductItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ProductItem, len(s.inventory))
	copy(out, s.inventory)
	return out
}

func (s *Store) Sales() []models.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

func (s *Store) Purchases() []models.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Purchase, len(s.purchases))
	copy(out, s.purchases)
	return out
}

func (s *Store) Clients() []models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

func (s *Store) Employees() []models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

// ItemName resolves a weak item reference to a display name. Dangling
// references degrade to a placeholder, they never fail.
func (s *Store) ItemName(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inventory {
		if s.inventory[i].Id == id {
			return s.inventory[i].Name
		}
	}
	return DeletedItemLabel
}

// Statements is the derived invoice view over the current sale ledger.
func (s *Store) Statements() []invoicing.ClientStatement {
	s.mu.Lock()
	sales := make([]models.Sale, len(s.sales))
	copy(sales, s.sales)
	s.mu.Unlock()
	return invoicing.GroupByClient(sales)
}

// ---- mutations ----

// SubmitSaleBatch books one invoice worth of sale lines: availability check
// (whole batch rejected on any shortage), shared invoice id, stock
// decrement, client auto-registration, then persistence. The three
// persistence targets (sales, inventory, clients) are independent writes;
// partial persistence on a crash is an accepted risk.
func (s *Store) SubmitSaleBatch(lines []models.Sale) ([]models.Sale, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty sale batch")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ledger.CheckAvailability(s.inventory, lines); err != nil {
		return nil, err
	}

	now := time.Now()
	invoiceId := invoicing.NewInvoiceID(now)

	finalized := make([]models.Sale, len(lines))
	for i, line := range lines {
		line.Id = uuid.NewString()
		line.InvoiceId = invoiceId
		if line.Date.IsZero() {
			line.Date = now
		}
		line.TotalPrice = utils.Round2(line.Quantity * line.UnitPrice)
		if line.ItemName == "" {
			line.ItemName = itemNameIn(s.inventory, line.ItemId)
		}
		finalized[i] = line
	}

	s.sales = append(finalized, s.sales...)
	s.inventory = ledger.ApplySales(s.inventory, finalized)

	// Auto-register an unknown client, once per batch, keyed off the first
	// line's name. Exact match only; empty phone/address, CASH type.
	clientName := finalized[0].ClientName
	if clientName != "" && !s.hasClient(clientName) {
		client := models.Client{
			Id:   uuid.NewString(),
			Name: clientName,
			Type: models.ClientTypeCash,
		}
		s.clients = append(s.clients, client)
		s.gw.SaveClient(client)
	}

	for _, sale := range finalized {
		s.gw.AddSale(sale)
	}
	s.gw.SaveItems(s.inventory)

	return finalized, nil
}

func (s *Store) hasClient(name string) bool {
	for i := range s.clients {
		if s.clients[i].Name == name {
			return true
		}
	}
	return false
}

func itemNameIn(items []models.ProductItem, id string) string {
	for i := range items {
		if items[i].Id == id {
			return items[i].Name
		}
	}
	return DeletedItemLabel
}

// AddPurchase books a restock event and increments the item's bundles.
func (s *Store) AddPurchase(purchase models.Purchase) models.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchase.Id = uuid.NewString()
	if purchase.Date.IsZero() {
		purchase.Date = time.Now()
	}

	s.purchases = append([]models.Purchase{purchase}, s.purchases...)
	s.inventory = ledger.ApplyPurchase(s.inventory, purchase)

	s.gw.AddPurchase(purchase)
	for i := range s.inventory {
		if s.inventory[i].Id == purchase.ItemId {
			s.gw.SaveItem(s.inventory[i])
			break
		}
	}
	return purchase
}

// SaveItem creates or edits an inventory item, upserting by code.
func (s *Store) SaveItem(item models.ProductItem) models.ProductItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.inventory {
		if s.inventory[i].Code == item.Code {
			item.Id = s.inventory[i].Id
			item.CreatedAt = s.inventory[i].CreatedAt
			s.inventory[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		item.Id = uuid.NewString()
		item.CreatedAt = time.Now()
		s.inventory = append([]models.ProductItem{item}, s.inventory...)
	}

	s.gw.SaveItem(item)
	return item
}

// DeleteItem hard-deletes an item. Sales and purchases that reference it
// keep their snapshots and resolve the id to a placeholder from then on.
func (s *Store) DeleteItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.inventory[:0]
	found := false
	for _, item := range s.inventory {
		if item.Id == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	s.inventory = kept
	if found {
		s.gw.DeleteItem(id)
	}
	return found
}

// DeleteSale removes a ledger entry. Stock is deliberately untouched: the
// record is history, not a reversible transaction.
func (s *Store) DeleteSale(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.sales[:0]
	found := false
	for _, sale := range s.sales {
		if sale.Id == id {
			found = true
			continue
		}
		kept = append(kept, sale)
	}
	s.sales = kept
	if found {
		s.gw.DeleteSale(id)
	}
	return found
}

// DeletePurchase removes a restock record without subtracting the bundles
// it delivered. Same non-reversal rule as sales.
func (s *Store) DeletePurchase(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.purchases[:0]
	found := false
	for _, purchase := range s.purchases {
		if purchase.Id == id {
			found = true
			continue
		}
		kept = append(kept, purchase)
	}
	s.purchases = kept
	if found {
		s.gw.DeletePurchase(id)
	}
	return found
}

// SaveClient creates or edits a client, upserting by name.
func (s *Store) SaveClient(client models.Client) models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.clients {
		if s.clients[i].Name == client.Name {
			client.Id = s.clients[i].Id
			s.clients[i] = client
			replaced = true
			break
		}
	}
	if !replaced {
		client.Id = uuid.NewString()
		if client.Type == "" {
			client.Type = models.ClientTypeCash
		}
		s.clients = append(s.clients, client)
	}

	s.gw.SaveClient(client)
	return client
}

func (s *Store) DeleteClient(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.clients[:0]
	found := false
	for _, client := range s.clients {
		if client.Id == id {
			found = true
			continue
		}
		kept = append(kept, client)
	}
	s.clients = kept
	if found {
		s.gw.DeleteClient(id)
	}
	return found
}

// SaveEmployee creates or edits an employee, upserting by name.
func (s *Store) SaveEmployee(employee models.Employee) models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.employees {
		if s.employees[i].Name == employee.Name {
			employee.Id = s.employees[i].Id
			s.employees[i] = employee
			replaced = true
			break
		}
	}
	if !replaced {
		employee.Id = uuid.NewString()
		s.employees = append(s.employees, employee)
	}

	s.gw.SaveEmployee(employee)
	return employee
}

// AddAdvance adds a salary advance to an employee's cumulative total.
func (s *Store) AddAdvance(id string, amount float64) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.employees {
		if s.employees[i].Id == id {
			s.employees[i].Advances = utils.Round2(s.employees[i].Advances + amount)
			s.gw.SaveEmployee(s.employees[i])
			return s.employees[i], nil
		}
	}
	return models.Employee{}, fmt.Errorf("employee %s not found", id)
}

func (s *Store) DeleteEmployee(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.employees[:0]
	found := false
	for _, employee := range s.employees {
		if employee.Id == id {
			found = true
			continue
		}
		kept = append(kept, employee)
	}
	s.employees = kept
	if found {
		s.gw.DeleteEmployee(id)
	}
	return found
}

// Flush pushes the full in-memory state through the gateway's bulk saves.
// Used by the administrative sync endpoint after offline editing sessions.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gw.SaveItems(s.inventory)
	s.gw.SaveSales(s.sales)
	s.gw.SavePurchases(s.purchases)
	s.gw.SaveClients(s.clients)
	s.gw.SaveEmployees(s.employees)
}

// WipeAll clears every collection and both persistence stores. The caller
// is responsible for having confirmed this with the operator.
func (s *Store) WipeAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gw.WipeAll(); err != nil {
		return err
	}
	s.inventory = nil
	s.sales = nil
	s.purchases = nil
	s.clients = nil
	s.employees = nil
	return nil
}

// Summary is the financial overview for the reports screen.
type Summary struct {
	ItemCount      int     `json:"item_count"`
	TotalBoards    float64 `json:"total_boards"`
	StockValueBuy  float64 `json:"stock_value_buy"`
	StockValueSell float64 `json:"stock_value_sell"`
	SalesCount     int     `json:"sales_count"`
	SalesTotal     float64 `json:"sales_total"`
	PurchasesTotal float64 `json:"purchases_total"`
	ClientCount    int     `json:"client_count"`
	EmployeeCount  int     `json:"employee_count"`
	PayrollNetDue  float64 `json:"payroll_net_due"`
}

// Summarize computes the reports overview from current state. Stock is
// valued at current buy/sell prices; there is no historical cost basis.
func (s *Store) Summarize() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{
		ItemCount:     len(s.inventory),
		SalesCount:    len(s.sales),
		ClientCount:   len(s.clients),
		EmployeeCount: len(s.employees),
	}
	for i := range s.inventory {
		boards := s.inventory[i].TotalBoards()
		sum.TotalBoards += boards
		sum.StockValueBuy += boards * s.inventory[i].BuyPrice
		sum.StockValueSell += boards * s.inventory[i].SellPrice
	}
	for i := range s.sales {
		sum.SalesTotal += s.sales[i].TotalPrice
	}
	for i := range s.purchases {
		sum.PurchasesTotal += s.purchases[i].Cost
	}
	for i := range s.employees {
		sum.PayrollNetDue += s.employees[i].NetDue()
	}

	sum.TotalBoards = utils.Round2(sum.TotalBoards)
	sum.StockValueBuy = utils.Round2(sum.StockValueBuy)
	sum.StockValueSell = utils.Round2(sum.StockValueSell)
	sum.SalesTotal = utils.Round2(sum.SalesTotal)
	sum.PurchasesTotal = utils.Round2(sum.PurchasesTotal)
	sum.PayrollNetDue = utils.Round2(sum.PayrollNetDue)
	return sum
}
