package main

import "pandemic/cmd"

func main() {
	cmd.Execute()
}
