package main

import "github.com/mj1618/axquery/cmd"

func main() {
	cmd.Execute()
}
