package invoicing

import (
	"regexp"
	"testing"
	"time"

	"timberyard-backend/models"

	"github.com/stretchr/testify/require"
)

func TestNewInvoiceIDFormat(t *testing.T) {
	ts := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^INV-20250314-[1-9][0-9]{3}$`)
	for i := 0; i < 50; i++ {
		require.Regexp(t, pattern, NewInvoiceID(ts))
	}
}

func day(d int) time.Time {
	return time.Date(2025, 1, d, 12, 0, 0, 0, time.UTC)
}

func TestGroupByClient(t *testing.T) {
	sales := []models.Sale{
		{Id: "1", InvoiceId: "INV-A", ClientName: "Miller", TotalPrice: 100, Date: day(1)},
		{Id: "2", InvoiceId: "INV-A", ClientName: "Miller", TotalPrice: 50, Date: day(1)},
		{Id: "3", InvoiceId: "INV-B", ClientName: "Miller", TotalPrice: 25, Date: day(5)},
		{Id: "4", InvoiceId: "INV-C", ClientName: "Baker", TotalPrice: 500, Date: day(3)},
	}

	statements := GroupByClient(sales)
	require.Len(t, statements, 2)

	// Baker spent 500, Miller 175: Baker first.
	require.Equal(t, "Baker", statements[0].Name)
	require.Equal(t, "Miller", statements[1].Name)

	miller := statements[1]
	require.Equal(t, 2, miller.TotalInvoices)
	require.Equal(t, 175.0, miller.TotalSpent)

	// Invoices newest first: INV-B (day 5) before INV-A (day 1).
	require.Equal(t, "INV-B", miller.Invoices[0].InvoiceId)

	invA := miller.Invoices[1]
	require.Equal(t, 150.0, invA.Total)
	require.Equal(t, 2, invA.ItemCount)
	require.Len(t, invA.Lines, 2)
}

func TestGroupByClientIdempotent(t *testing.T) {
	sales := []models.Sale{
		{Id: "1", InvoiceId: "INV-A", ClientName: "Miller", TotalPrice: 100, Date: day(1)},
		{Id: "2", InvoiceId: "INV-B", ClientName: "Baker", TotalPrice: 60, Date: day(2)},
		{Id: "3", InvoiceId: "INV-B", ClientName: "Baker", TotalPrice: 40, Date: day(2)},
	}
	require.Equal(t, GroupByClient(sales), GroupByClient(sales))
}

func TestGroupByClientCaseSensitiveNames(t *testing.T) {
	sales := []models.Sale{
		{Id: "1", InvoiceId: "A", ClientName: "miller", TotalPrice: 10, Date: day(1)},
		{Id: "2", InvoiceId: "B", ClientName: "Miller", TotalPrice: 10, Date: day(1)},
	}
	require.Len(t, GroupByClient(sales), 2, "differently-cased names must not merge")
}

func TestGroupByClientEmptyLedger(t *testing.T) {
	require.Empty(t, GroupByClient(nil))
}
