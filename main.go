package main

import "github.com/kt902/dissertation/cmd"

func main() {
	cmd.Execute()
}
