package main

import "github.com/brogergvhs/choirscrape/cmd"

func main() {
	cmd.Execute()
}
