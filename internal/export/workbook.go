// Package export renders order listings as spreadsheet workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tuanvy6922/caketeaadmin/internal/billing"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
)

// Sheet names in workbook order
const (
	SheetOrders  = "Orders"
	SheetItems   = "Order Items"
	SheetRevenue = "Revenue"
)

// ContentType is the MIME type of a generated workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateLayout = "02/01/2006 15:04"

var (
	orderHeader = []interface{}{
		"No.", "Order ID", "Customer", "Email", "Address", "Order Date",
		"Payment", "Status", "Delivery", "Staff", "Voucher", "Discount", "Total",
	}
	itemHeader = []interface{}{"No.", "Product", "Size", "Unit Price", "Quantity", "Line Total"}
)

// FileName returns the timestamped name of a workbook generated at t
func FileName(t time.Time) string {
	return fmt.Sprintf("orders_%s.xlsx", t.Format("20060102_150405"))
}

// Workbook builds the three sheet report for orders: the order list, the
// line items grouped per order, and the revenue summary. Dates are written
// in loc.
func Workbook(orders []*models.Order, summary models.RevenueSummary, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOrders); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetItems, SheetRevenue} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeOrders(f, orders, loc, bold); err != nil {
		return nil, err
	}
	if err := writeItems(f, orders, loc, bold); err != nil {
		return nil, err
	}
	if err := writeRevenue(f, summary, bold); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeOrders(f *excelize.File, orders []*models.Order, loc *time.Location, header int) error {
	if err := setRow(f, SheetOrders, 1, orderHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetOrders, 1, 1, header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, o := range orders {
		voucher := "None"
		if o.VoucherCode != nil && *o.VoucherCode != "" {
			voucher = *o.VoucherCode
		}
		row := []interface{}{
			i + 1,
			o.ID,
			o.CustomerName,
			o.CustomerID,
			o.Address,
			formatDate(o.Date, loc),
			o.PaymentMethod,
			string(o.Status),
			string(o.DeliveryStatus),
			o.StaffName,
			voucher,
			o.VoucherDiscount,
			amountCell(o.TotalAmount),
		}
		if err := setRow(f, SheetOrders, i+2, row); err != nil {
			return err
		}
	}

	return f.SetColWidth(SheetOrders, "B", "M", 18)
}

func writeItems(f *excelize.File, orders []*models.Order, loc *time.Location, header int) error {
	r := 1
	for _, o := range orders {
		if err := setRow(f, SheetItems, r, []interface{}{o.ID, o.CustomerName, o.CustomerID, formatDate(o.Date, loc)}); err != nil {
			return err
		}
		if err := f.SetRowStyle(SheetItems, r, r, header); err != nil {
			return fmt.Errorf("failed to style order row: %w", err)
		}
		r++

		if err := setRow(f, SheetItems, r, itemHeader); err != nil {
			return err
		}
		r++

		for i, item := range o.Items {
			row := []interface{}{i + 1, item.ProductName, item.Size, item.UnitPrice, item.Quantity, item.LineTotal()}
			if err := setRow(f, SheetItems, r, row); err != nil {
				return err
			}
			r++
		}

		if err := setRow(f, SheetItems, r, []interface{}{nil, "Subtotal", nil, nil, nil, o.ItemsSubtotal()}); err != nil {
			return err
		}
		r++

		// blank separator row
		r++
	}

	return f.SetColWidth(SheetItems, "A", "F", 18)
}

func writeRevenue(f *excelize.File, s models.RevenueSummary, header int) error {
	rows := [][]interface{}{
		{"Revenue"},
		{"Today", s.Today},
		{"Last 7 days", s.Week},
		{"Last 30 days", s.Month},
		{"Total", s.Total},
	}
	if s.Excluded > 0 {
		rows = append(rows, []interface{}{"Excluded orders", s.Excluded})
	}

	for i, row := range rows {
		if err := setRow(f, SheetRevenue, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(SheetRevenue, 1, 1, header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return f.SetColWidth(SheetRevenue, "A", "B", 20)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func formatDate(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(loc).Format(dateLayout)
}

// amountCell writes a number when the amount normalizes, the raw text otherwise
func amountCell(a models.Amount) interface{} {
	if v, ok := billing.NormalizeAmount(a); ok {
		return v
	}
	return a.String()
}
