package main

import (
	"fmt"
	"os"

	"sample/store"
)

func main() {
	s := store.New()
	for _, name := range os.Args[1:] {
		if err := s.Put(name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		} else {
			fmt.Println("stored", name)
		}
	}
}
