package main

import (
	"log"
	"os"

	"github.com/bengobox/starter-service/internal/greeting"
)

func main() {
	if err := greeting.Run(os.Stdout); err != nil {
		log.Fatalf("greeter: %v", err)
	}
}
