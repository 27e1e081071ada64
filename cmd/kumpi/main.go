// Package main provides the kumpi command line tool
package main

import "kumpisahko/internal/cli"

func main() {
	cli.Execute()
}
