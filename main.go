package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dbeckwith/rust-latest/cmd"
)

var version = "1.0.0"

func main() {
	if err := cmd.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
			fmt.Fprintf(os.Stderr, "\tcaused by: %v\n", cause)
		}
		os.Exit(1)
	}
}
