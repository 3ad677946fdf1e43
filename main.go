package main

import "github.com/facemark/attendance-portal/cmd"

func main() {
	cmd.Execute()
}
