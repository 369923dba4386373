package main

import "pathfinder_gateway/internal/app"

func main() {
	app.Run()
}
