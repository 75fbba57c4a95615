package main

import "github.com/kamdem/biogate/cmd"

func main() {
	cmd.Execute()
}
