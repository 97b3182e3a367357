package main

import "github.com/tranvictor/seer/cmd"

func main() {
	cmd.Execute()
}
