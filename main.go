package main

import (
	"fmt"
	"log"

	"github.com/tarapoker/tarapoker/server"
)

func main() {
	fmt.Println("Starting Tarapoker backend...")

	s := server.NewServer(server.LoadConfig())
	if err := s.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
