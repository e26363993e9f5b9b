package main

import "flightdb/cmd"

func main() {
	cmd.Execute()
}
