// Command rrsched runs a round-robin scheduling simulation over a directory of
// process definitions and writes the log<QQ>.txt report.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
