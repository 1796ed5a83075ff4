package main

import "fieldcorrect/internal/app"

func main() {
	app.Main()
}
