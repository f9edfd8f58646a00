// Command gensecret prints a random hex-encoded key suitable for the
// server's --secret-key flag.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

const secretKeyLen = 32

func main() {
	key := make([]byte, secretKeyLen)

	if _, err := rand.Read(key); err != nil {
		fmt.Fprintf(os.Stderr, "generate secret key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hex.EncodeToString(key))
}
