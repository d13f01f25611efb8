// Package sample is fixture data for the syntax provider.
package sample

import (
	"fmt"
	"strings"
)

// Greet says hello.
// It upper-cases the name first.
func Greet(name string) string {
	return fmt.Sprintf("hello %s", strings.ToUpper(name))
}

func add(a, b int) int {
	return a + b
}
