package main

import "github.com/tlqiu/quic3/cmd"

func main() {
	cmd.Execute()
}
