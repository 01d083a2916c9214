package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
