package main

import "dupscan/src/handler/cli"

func main() {
	cli.Run()
}
