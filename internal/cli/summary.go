package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vitlib/biblio-migrate/internal/model"
)

// RenderRunSummary formats the tally of a finished migration run.
func RenderRunSummary(run *model.IngestRun) string {
	rows := []string{
		summaryRow("Run ID", run.RunID),
		summaryRow("Source", run.SourcePath),
		summaryRow("Records read", fmt.Sprintf("%d", run.RecordsRead)),
		summaryRow("Items written", SuccessStyle.Render(fmt.Sprintf("%d", run.ItemsWritten))),
		summaryRow("No holdings", WarningStyle.Render(fmt.Sprintf("%d", run.NoData))),
		summaryRow("Malformed", errorCount(run.Malformed)),
		summaryRow("Elapsed", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()),
	}
	return RenderBox("Migration complete", strings.Join(rows, "\n"))
}

// RenderItem formats one classified item for inspection.
func RenderItem(item *model.Item) string {
	rows := []string{
		summaryRow("Barcode", orDash(item.Barcode)),
		summaryRow("Call number", orDash(item.CallNumber)),
		summaryRow("Shelving", orDash(item.ShelvingLocation)),
		summaryRow("Library", orDash(item.LibraryCode)),
		summaryRow("Vendor", orDash(item.Vendor)),
		summaryRow("Bill number", orDash(item.BillNumber)),
		summaryRow("Price", formatPrice(item)),
		summaryRow("Bill date", formatDate(item.BillDate)),
		summaryRow("Acquired", formatDate(item.DateAcquired)),
		summaryRow("Last seen", formatDate(item.LastSeenDate)),
	}
	if item.StatusFlags.Any() {
		rows = append(rows, summaryRow("Flags", WarningStyle.Render(formatFlags(item.StatusFlags))))
	}
	return RenderBox("Classified item", strings.Join(rows, "\n"))
}

func summaryRow(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), value)
}

func errorCount(n int) string {
	if n == 0 {
		return "0"
	}
	return ErrorStyle.Render(fmt.Sprintf("%d", n))
}

func orDash(s string) string {
	if s == "" {
		return SubtleStyle.Render("—")
	}
	return s
}

func formatPrice(item *model.Item) string {
	if item.Price == nil {
		return SubtleStyle.Render("—")
	}
	if item.Currency != "" {
		return fmt.Sprintf("%.2f %s", *item.Price, item.Currency)
	}
	return fmt.Sprintf("%.2f", *item.Price)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return SubtleStyle.Render("—")
	}
	return t.Format("2006-01-02")
}

func formatFlags(f model.StatusFlags) string {
	var set []string
	if f.Withdrawn {
		set = append(set, "withdrawn")
	}
	if f.Lost {
		set = append(set, "lost")
	}
	if f.Damaged {
		set = append(set, "damaged")
	}
	if f.NotForLoan {
		set = append(set, "not for loan")
	}
	return strings.Join(set, ", ")
}
