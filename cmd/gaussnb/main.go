// Command gaussnb trains and evaluates Gaussian Naive Bayes classifiers on
// synthetic or CSV data.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
