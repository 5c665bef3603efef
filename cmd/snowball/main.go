// Package main provides the snowball desktop widget and its helper commands.
package main

func main() {
	Execute()
}
