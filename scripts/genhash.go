package main

import (
	"fmt"
	"os"
	"strings"

	"recruitment-platform/pkg/hash"
)

// Prints bcrypt hashes for seeding users by hand:
//
//	go run ./scripts/genhash.go alice:secret bob:hunter2
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash username:password ...")
		os.Exit(2)
	}

	for _, arg := range os.Args[1:] {
		user, pass, ok := strings.Cut(arg, ":")
		if !ok || user == "" || pass == "" {
			fmt.Fprintln(os.Stderr, "skipping malformed argument:", arg)
			continue
		}
		h, err := hash.Password(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("User: %s\nHash: %s\n\n", user, h)
	}
}
