package main

import "realty-inventory/cmd"

func main() {
	cmd.Execute()
}
