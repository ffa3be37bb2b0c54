package main

import "github.com/vietddude/chargewindow/internal/cli"

func main() {
	cli.Execute()
}
