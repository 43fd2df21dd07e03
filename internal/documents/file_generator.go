package documents

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileGenerator writes plain-text contract snapshots under a local
// directory. It stands in for the real document pipeline the same way a
// local object store stands in for S3.
type FileGenerator struct {
	outputDir string
}

func NewFileGenerator(outputDir string) (*FileGenerator, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create contract output dir: %w", err)
	}
	return &FileGenerator{outputDir: outputDir}, nil
}

func (g *FileGenerator) Generate(_ context.Context, data ContractData) (string, error) {
	rt := data.Rental

	var b strings.Builder
	fmt.Fprintf(&b, "RENTAL CONTRACT %s\n", rt.ContractNumber)
	fmt.Fprintf(&b, "Customer: %s <%s>\n", data.Customer.Name, data.Customer.Email)
	fmt.Fprintf(&b, "Vehicle: %s %s (%s)\n", data.Vehicle.Make, data.Vehicle.Model, data.Vehicle.Plate)
	fmt.Fprintf(&b, "Period: %s to %s (%d days)\n",
		rt.StartDate.Format("2006-01-02"), rt.EndDate.Format("2006-01-02"), rt.TotalDays)
	if rt.ActualDeliveryDate != nil {
		fmt.Fprintf(&b, "Delivered: %s\n", rt.ActualDeliveryDate.Format("2006-01-02 15:04"))
	}
	if rt.ActualReturnDate != nil {
		fmt.Fprintf(&b, "Returned: %s\n", rt.ActualReturnDate.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "Daily rate: %d cents\n", rt.DailyRateCents)
	fmt.Fprintf(&b, "Total: %d cents\n", rt.TotalAmountCents)
	fmt.Fprintf(&b, "Paid: %d cents, balance: %d cents\n", rt.AmountPaidCents, rt.Balance())
	if rt.IsDelayed() {
		fmt.Fprintf(&b, "Late return: %d days, penalty %d cents (billed separately)\n",
			rt.DelayDays(), rt.DelayPenaltyCents())
	}

	path := filepath.Join(g.outputDir, rt.ContractNumber+".txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write contract document: %w", err)
	}
	return path, nil
}
