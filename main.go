package main

import "github.com/skaiser/dgate/cmd"

func main() {
	cmd.Execute()
}
