package main

import (
	"net/http"
	"os"
	"time"

	"github.com/hyukkyo/demon-tournament/internal/constants"
)

func main() {
	addr := "http://127.0.0.1:8080"
	if port := os.Getenv(constants.EnvPort); port != "" {
		addr = "http://127.0.0.1:" + port
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(addr + constants.RouteHealthz)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
