package main

import "docvault_backend/internal/app"

func main() {
	app.Run()
}
