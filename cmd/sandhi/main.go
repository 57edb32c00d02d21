// Package main provides the sandhi CLI for ordered phonological derivation.
package main

func main() {
	Execute()
}
