package main

import "github.com/worklinkhq/worklink/cmd"

func main() {
	cmd.Execute()
}
