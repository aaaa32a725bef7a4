package main

import "github.com/dotcommander/pwgrade/cmd"

func main() {
	cmd.Execute()
}
