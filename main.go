package main

import "github.com/banterhq/banter/cmd"

func main() {
	cmd.Execute()
}
