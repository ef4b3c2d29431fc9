package main

import (
	"flag"
	"fmt"
	"log"

	"nick-exchange.backend/pkg/crypto"
)

// Generates an admin key and its bcrypt hash. The hash goes into
// ADMIN_KEY_HASH, the plain key is handed to the operator.
func generateAdminKey(length int) (key, hash string, err error) {
	key, err = crypto.GenerateRandomToken(length)
	if err != nil {
		return "", "", err
	}
	hash, err = crypto.HashKey(key)
	if err != nil {
		return "", "", err
	}
	return key, hash, nil
}

func main() {
	length := flag.Int("length", 32, "random key length in bytes")
	flag.Parse()

	key, hash, err := generateAdminKey(*length)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("admin key:      %s\n", key)
	fmt.Printf("ADMIN_KEY_HASH: %s\n", hash)
}
