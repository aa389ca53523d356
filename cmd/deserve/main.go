package main

import "github.com/VisheshVGR/do-i-deserve-it-website/internal/cmd"

func main() {
	cmd.Execute()
}
