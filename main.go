package main

import "github.com/ibex-ipc/ibex/cmd"

func main() {
	cmd.Execute()
}
