package main

import "github.com/huntboard/huntboard/cmd"

func main() {
	cmd.Execute()
}
