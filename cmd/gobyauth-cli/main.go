package main

import "github.com/nfrund/gobyauth/cmd/gobyauth-cli/cmd"

func main() {
	cmd.Execute()
}
