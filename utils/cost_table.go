package utils

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

// ResourceGroupTotal is one resource group's cost summed over the reporting window
type ResourceGroupTotal struct {
	Name   string
	Amount float64
}

func DrawDailyCostTable(account string, costs []model.DailyCost) {
	fmt.Println(RenderDailyCostTable(account, costs))
}

// RenderDailyCostTable lists each day's cost followed by the window total
func RenderDailyCostTable(account string, costs []model.DailyCost) string {
	tw := table.NewWriter()
	tw.SetTitle("%s", text.FgBlue.Sprint(account))
	tw.AppendHeader(table.Row{"Date", "Cost"})

	var total float64
	for _, day := range costs {
		total += day.Cost
		tw.AppendRow(table.Row{day.UsageDate, text.FgGreen.Sprintf("%.2f", day.Cost)})
	}

	tw.AppendFooter(table.Row{"Total", text.FgHiYellow.Sprintf("%.2f", total)})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}

func DrawResourceGroupCostTable(account string, costs []model.ResourceGroupCost) {
	fmt.Println(RenderResourceGroupCostTable(account, costs))
}

// RenderResourceGroupCostTable ranks resource groups by their total cost in the window
func RenderResourceGroupCostTable(account string, costs []model.ResourceGroupCost) string {
	totals := TotalsByResourceGroup(costs)

	var grandTotal float64
	for _, group := range totals {
		grandTotal += group.Amount
	}

	tw := table.NewWriter()
	tw.SetTitle("%s", text.FgBlue.Sprint(account))
	tw.AppendHeader(table.Row{"Resource Group", "Cost", "Share"})

	for idx, group := range totals {
		share := 0.0
		if grandTotal > 0 {
			share = group.Amount / grandTotal * 100
		}

		name := text.FgGreen.Sprintf("%s", group.Name)
		if idx == 0 {
			name = text.FgRed.Sprintf("%s", group.Name)
		}
		tw.AppendRow(table.Row{name, fmt.Sprintf("%.2f", group.Amount), fmt.Sprintf("%.1f%%", share)})
	}

	tw.AppendFooter(table.Row{"Total", text.FgHiYellow.Sprintf("%.2f", grandTotal), ""})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return tw.Render()
}

// TotalsByResourceGroup sums per-day records into one total per group, most expensive first
func TotalsByResourceGroup(costs []model.ResourceGroupCost) []ResourceGroupTotal {
	byGroup := make(map[string]float64)
	for _, c := range costs {
		byGroup[c.ResourceGroup] += c.Cost
	}

	totals := make([]ResourceGroupTotal, 0, len(byGroup))
	for name, amount := range byGroup {
		totals = append(totals, ResourceGroupTotal{Name: name, Amount: amount})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount == totals[j].Amount {
			return totals[i].Name < totals[j].Name
		}
		return totals[i].Amount > totals[j].Amount
	})

	return totals
}

func DrawSummaryTable(account string, summary *model.CostSummary) {
	fmt.Println(RenderSummaryTable(account, summary))
}

func RenderSummaryTable(account string, summary *model.CostSummary) string {
	tw := table.NewWriter()
	tw.SetTitle("%s", text.FgBlue.Sprint(account))
	tw.AppendRows([]table.Row{
		{"Period", fmt.Sprintf("%s to %s", summary.Start, summary.End)},
		{"Days", summary.PeriodDays},
		{"Total cost", text.FgHiYellow.Sprintf("%.2f", summary.TotalCost)},
		{"Average daily cost", fmt.Sprintf("%.2f", summary.AvgDailyCost)},
	})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	return tw.Render()
}
