package main

import (
	"fmt"
	"os"

	"storefront/internal/cli"
)

func main() {
	if err := cli.Execute(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
