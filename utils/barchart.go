package utils

import (
	"fmt"
	"sort"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#f46d43"
	ColorRank3 = "#fee08b"
	ColorRank4 = "#abdda4"
	ColorRank5 = "#66c2a5"
	ColorRank6 = "#1a9850"
)

var defaultStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#0078D4"))

// DrawDailyCostChart plots one bar per day; the most expensive days get the hottest colors
func DrawDailyCostChart(account string, costs []model.DailyCost) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" AZURE DAILY COSTS"))
	fmt.Printf(" Subscription: %s\n", text.FgBlue.Sprint(account))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))
	fmt.Println()

	fmt.Println(RenderDailyCostChart(costs, 130, 20))
}

func RenderDailyCostChart(costs []model.DailyCost, width, height int) string {
	bc := barchart.New(width, height)

	amounts := make([]float64, len(costs))
	for i, day := range costs {
		amounts[i] = day.Cost
	}
	indexedColors := assignRankedColors(amounts)

	for idx, day := range costs {
		style := lipgloss.NewStyle()
		if indexedColors[idx] != "" {
			style = style.Foreground(lipgloss.Color(indexedColors[idx]))
		}

		bc.Push(barchart.BarData{
			Label: getBarLabel(day.UsageDate),
			Values: []barchart.BarValue{
				{Name: day.UsageDate, Value: day.Cost, Style: style},
			},
		})
	}

	bc.Draw()
	return lipgloss.JoinHorizontal(lipgloss.Top, defaultStyle.Render(bc.View()))
}

// getBarLabel keeps only the day of month so a full month fits under the chart
func getBarLabel(date string) string {
	parsedTime, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsedTime.Format("02")
}

// assignRankedColors colors the six largest values and leaves the rest unstyled
func assignRankedColors(values []float64) []string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3, ColorRank4, ColorRank5, ColorRank6}

	type costWithIndex struct {
		index int
		value float64
	}

	costsToSort := make([]costWithIndex, len(values))
	for i, v := range values {
		costsToSort[i] = costWithIndex{index: i, value: v}
	}

	sort.SliceStable(costsToSort, func(i, j int) bool {
		return costsToSort[i].value > costsToSort[j].value
	})

	resultColors := make([]string, len(values))
	for rank, sortedCost := range costsToSort {
		if rank < len(palette) {
			resultColors[sortedCost.index] = palette[rank]
		}
	}

	return resultColors
}
