package model

// Report names accepted by the costs command
const (
	ReportLastMonth       = "last-month"
	ReportByResourceGroup = "by-resource-group"
	ReportSummary         = "summary"
)

type Flags struct {
	Subscription string
	Report       string

	// Render a bar chart of daily totals instead of a table
	Chart bool
}
