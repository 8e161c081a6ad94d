package output

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

type ConsoleOutput struct {
	w io.Writer
}

// NewConsoleOutput writes to stdout when w is nil.
func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteReport(topic string, snap *Snapshot) error {
	tw := tabwriter.NewWriter(c.w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "[%s] %s\n", topic, snap.Range)
	fmt.Fprintf(tw, "Total orders\t%d\n", snap.TotalOrders)
	fmt.Fprintf(tw, "Average delivery time\t%s\n", snap.DeliveryTimeLabel)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Month\tOrders\tRevenue")
	for _, b := range snap.MonthlyOrders {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", b.MonthName(), b.OrderCount, b.Revenue.StringFixed(2))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "City\tCustomers")
	for _, city := range snap.TopCities {
		fmt.Fprintf(tw, "%s\t%d\n", city.City, city.Customers)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error {
	return nil
}
