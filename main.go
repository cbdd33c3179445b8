package main

import "github.com/guettli/eventqueue/cmd"

func main() {
	cmd.Execute()
}
