package main

import "github.com/JonMunkholm/teistermask/internal/cli"

func main() {
	cli.Execute()
}
