package main

import (
	"fmt"
	"os"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
