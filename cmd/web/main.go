package main

import "consultbr_backend/internal/app"

func main() {
	app.Run()
}
