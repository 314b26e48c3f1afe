package main

import "github.com/MeKo-Tech/gs1scan/cmd/gs1scan/cmd"

func main() {
	cmd.Execute()
}
