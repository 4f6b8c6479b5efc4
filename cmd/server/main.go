package main

import (
	"codeclimb/internal/server"
)

func main() {
	server.StartGinServer()
}
