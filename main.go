package main

import "samwise/cmd"

func main() {
	cmd.Execute()
}
