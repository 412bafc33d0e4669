// Package invoicing gives co-submitted sale lines a shared invoice identity
// and reconstructs invoice groupings from the flat sale ledger. Groupings
// are a derived view: recomputed on demand, never persisted.
package invoicing

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"timberyard-backend/models"
)

// NewInvoiceID builds an id of the form INV-{YYYYMMDD}-{4 digit random}.
// The random suffix is a grouping key, not a uniqueness guarantee: two
// same-day submissions can in principle collide. Documented limitation,
// carried over from the original numbering scheme.
func NewInvoiceID(t time.Time) string {
	suffix := 1000 + rand.Intn(9000)
	return fmt.Sprintf("INV-%s-%d", t.Format("20060102"), suffix)
}

// Invoice is one reconstructed group of sale lines sharing an invoice id.
type Invoice struct {
	InvoiceId string        `json:"invoice_id"`
	Date      time.Time     `json:"date"`  // date of the first line encountered
	Total     float64       `json:"total"` // sum of line totals
	ItemCount int           `json:"item_count"`
	Lines     []models.Sale `json:"lines"`
}

// ClientStatement collects all invoices of one client plus lifetime totals.
type ClientStatement struct {
	Name          string    `json:"name"`
	TotalInvoices int       `json:"total_invoices"`
	TotalSpent    float64   `json:"total_spent"`
	Invoices      []Invoice `json:"invoices"`
}

// GroupByClient partitions the sale ledger by client name (exact,
// case-sensitive), then by invoice id within each client. Invoices are
// sorted newest first; clients by lifetime spend, highest first.
func GroupByClient(sales []models.Sale) []ClientStatement {
	byClient := make(map[string][]models.Sale)
	clientOrder := make([]string, 0)
	for _, sale := range sales {
		if _, seen := byClient[sale.ClientName]; !seen {
			clientOrder = append(clientOrder, sale.ClientName)
		}
		byClient[sale.ClientName] = append(byClient[sale.ClientName], sale)
	}

	statements := make([]ClientStatement, 0, len(byClient))
	for _, name := range clientOrder {
		clientSales := byClient[name]

		byInvoice := make(map[string][]models.Sale)
		invoiceOrder := make([]string, 0)
		for _, sale := range clientSales {
			if _, seen := byInvoice[sale.InvoiceId]; !seen {
				invoiceOrder = append(invoiceOrder, sale.InvoiceId)
			}
			byInvoice[sale.InvoiceId] = append(byInvoice[sale.InvoiceId], sale)
		}

		st := ClientStatement{Name: name}
		for _, id := range invoiceOrder {
			lines := byInvoice[id]
			inv := Invoice{
				InvoiceId: id,
				Date:      lines[0].Date,
				ItemCount: len(lines),
				Lines:     lines,
			}
			for _, line := range lines {
				inv.Total += line.TotalPrice
			}
			st.Invoices = append(st.Invoices, inv)
			st.TotalSpent += inv.Total
		}
		st.TotalInvoices = len(st.Invoices)

		sort.SliceStable(st.Invoices, func(i, j int) bool {
			return st.Invoices[i].Date.After(st.Invoices[j].Date)
		})
		statements = append(statements, st)
	}

	sort.SliceStable(statements, func(i, j int) bool {
		return statements[i].TotalSpent > statements[j].TotalSpent
	})
	return statements
}
