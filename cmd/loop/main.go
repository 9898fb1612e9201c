package main

import (
	"fmt"
	"looping/internal/loop"
	"os"
	"strconv"
)

func main() {
	if len(os.Args) <= 2 {
		fmt.Println("Usage: loop <index> <item>...")
		return
	}

	i, err := strconv.Atoi(os.Args[1])
	if err != nil {
		fmt.Println("Index must be a whole number.")
		os.Exit(2)
	}

	items := loop.Slice[string](os.Args[2:])

	r, err := loop.Resolve(items, i)
	if err != nil {
		fmt.Println("Resolve error:")
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("%d %s\n", r, items.At(r))
}
