package utils

import (
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/common-nighthawk/go-figure"
)

var (
	spin     *spinner.Spinner
	spinOnce sync.Once
)

func DrawBanner() {
	figure.NewColorFigure("Azure Costs", "", "blue", true).Print()
}

// StartSpinner shows progress on stderr while Azure is queried
func StartSpinner() {
	spinOnce.Do(func() {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = " Querying Azure Cost Management..."
	})
	spin.Start()
}

func StopSpinner() {
	if spin != nil {
		spin.Stop()
	}
}
