// SPDX-License-Identifier: MIT

// Command stochgrid builds a scenario tree, samples a historical series onto
// it and prints the grid, decision grid or leaf weights as YAML.
//
//	stochgrid grid    --config run.yaml
//	stochgrid sample  --config run.yaml --csv prices.csv
//	stochgrid regrid  --duration 24 --sample
//	stochgrid weights --sample --synthetic 5000
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "stochgrid:", err)
		os.Exit(1)
	}
}
