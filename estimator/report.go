package estimator

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Render writes the human-readable cost report: one line per category plus a
// total, to two decimal places.
func Render(w io.Writer, estimate *Estimate) error {
	fmt.Fprintf(w, "Monthly cost estimate for EKS cluster %q [region=%s]\n\n", estimate.Cluster, estimate.Region)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, category := range estimate.Categories {
		fmt.Fprintf(tw, "%s\t$%.2f/month\t%s\n", category.Name, category.Monthly, detailColumn(category.Detail))
	}
	fmt.Fprintf(tw, "Total\t$%.2f/month\t\n", estimate.Total())
	if err := tw.Flush(); err != nil {
		return err
	}

	if estimate.SavingsPlan != nil {
		fmt.Fprintf(w, "\nInstance fleet at 1-year no-upfront savings plan rates: $%.2f/month (%d of %d instances covered)\n",
			estimate.SavingsPlan.Monthly, estimate.SavingsPlan.Covered, estimate.SavingsPlan.Total)
	}
	return nil
}

func detailColumn(detail string) string {
	if detail == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", detail)
}
