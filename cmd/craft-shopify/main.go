package main

import "github.com/mauricepattyn/craft-shopify/cmd/craft-shopify/cmd"

func main() {
	cmd.Execute()
}
