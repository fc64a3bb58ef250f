// Command financectl quotes boat loans, suggests rates and compares
// scenarios, either in-process or against a running server.
package main

import (
	"os"

	"github.com/mmynk/boatfinance/pkg/logging"
)

func main() {
	logging.Setup(os.Getenv("LOG_LEVEL"))
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
