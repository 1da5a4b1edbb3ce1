package main

import "github.com/pfenwick/coursedates/cmd"

func main() {
	cmd.Execute()
}
