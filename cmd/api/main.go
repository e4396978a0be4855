package main

import (
	"os"

	"github.com/cinealto/cinema-reservation-api/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		os.Exit(1)
	}
}
