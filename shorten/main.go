package main

import "github.com/jbaldus/shorten/cmd"

func main() {
	cmd.Execute()
}
