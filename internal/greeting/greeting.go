// Package greeting holds the starter program that greets the caller and
// works through a small list of integers.
package greeting

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Welcome is the first line the program prints.
const Welcome = "Welcome to Go!"

// DefaultName is the name the program greets.
const DefaultName = "World"

var numbers = [...]int{1, 2, 3, 4, 5}

// Greet returns the greeting for name.
func Greet(name string) string {
	return "Hello, " + name + "!"
}

// Numbers returns a copy of the sample sequence.
func Numbers() []int {
	out := make([]int, len(numbers))
	copy(out, numbers[:])
	return out
}

// Sum returns the arithmetic total of xs.
func Sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

// Squares returns a new slice holding the square of each element of xs, in order.
func Squares(xs []int) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[i] = x * x
	}
	return out
}

// FormatList renders xs as "[1, 2, 3]".
func FormatList(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Lines returns the program output, one entry per line.
func Lines() []string {
	nums := Numbers()
	return []string{
		Welcome,
		Greet(DefaultName),
		fmt.Sprintf("Sum of %s = %d", FormatList(nums), Sum(nums)),
		"Squares: " + FormatList(Squares(nums)),
	}
}

// Run writes the program output to w.
func Run(w io.Writer) error {
	for _, line := range Lines() {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
