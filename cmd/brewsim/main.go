package main

import (
	"fmt"
	"os"

	_ "brewchain/app"
	"brewchain/cmd/brewsim/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
