package main

import (
	"os"

	"github.com/seldo/seldo/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
