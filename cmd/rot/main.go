package main

import (
	"fmt"
	"looping/internal/rot"
	"os"
	"strconv"
	"strings"
)

func main() {
	if len(os.Args) <= 2 {
		fmt.Println("Usage: rot <n> <text>...")
		return
	}

	n, err := strconv.Atoi(os.Args[1])
	if err != nil {
		fmt.Println("N must be a whole number.")
		os.Exit(2)
	}

	fmt.Println(rot.String(strings.Join(os.Args[2:], " "), n))
}
