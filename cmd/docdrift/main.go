package main

import "docdrift/cmd/docdrift/cmd"

func main() {
	cmd.Execute()
}
