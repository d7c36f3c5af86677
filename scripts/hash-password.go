package main

import (
	"fmt"
	"os"

	"github.com/optima-app/api-server-go/internal/util"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/hash-password.go <password>\n")
		os.Exit(1)
	}

	fmt.Println(util.HashPassword(os.Args[1]))
}
