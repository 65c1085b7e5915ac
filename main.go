package main

import "github.com/bookworm-labs/librarian/cmd"

func main() {
	cmd.Execute()
}
