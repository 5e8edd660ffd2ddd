package main

import "github.com/m3rciful/electionbot/internal/cli"

func main() {
	cli.Execute()
}
