package main

import "github.com/chrisdamba/ecomdash/cmd"

func main() {
	cmd.Execute()
}
