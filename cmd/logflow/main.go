package main

import "github.com/mmynk/logflow/internal/cli"

func main() {
	cli.Execute()
}
