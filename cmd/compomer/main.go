// Command compomer decomposes measured masses into candidate compomers over
// a weighted alphabet (CHNOPS by default).
//
// Usage:
//
//	compomer decompose 180.0634 --ppm 5
//	compomer decompose 18.0106 --alphabet C=12,H=1.00782503207,O=15.99491461956 --json
//	compomer check 23 24 --alphabet A=5,B=7 --precision 1
//	compomer table --config compomer.yaml
//	compomer config > compomer.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
