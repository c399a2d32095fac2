package main

import (
	"os"

	"desktopcleaner/internal/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:]))
}
