package main

import (
	"fmt"
	"log"
	"os"

	"warranty-register.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = crypto.HashPassword
	fatalfFn       = log.Fatalf
)

// hash-gen produces the bcrypt hash for the ADMIN_PASSWORD_HASH environment
// variable. The password is taken from the first argument; it is never stored
// or echoed back.
func run(args []string) {
	if len(args) == 0 {
		fatalfFn("usage: hash-gen <password>")
		return
	}

	hash, err := generateHashFn(args[0])
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("ADMIN_PASSWORD_HASH=%s\n", hash)
}

func main() {
	run(os.Args[1:])
}
