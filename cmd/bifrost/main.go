/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/bifrostdb/bifrost/cmd/bifrost/cmd"
)

func main() {
	cmd.Execute()
}
