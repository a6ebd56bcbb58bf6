package main

import "github.com/mvp-joe/jones/internal/cli"

func main() {
	cli.Execute()
}
