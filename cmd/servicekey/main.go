// servicekey generates a key for the internal API and prints it together with
// the hash to put into KEYO_AUTH_SERVICEKEYHASH.
package main

import (
	"Keyo/utils"
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
)

func main() {
	var key string
	flag.StringVar(&key, "key", "", "Hash this key instead of generating one.")
	flag.Parse()

	if key == "" {
		buf := make([]byte, 32)
		_, err := rand.Read(buf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generating key: %v\n", err)
			os.Exit(1)
		}
		key = base64.RawURLEncoding.EncodeToString(buf)
	}

	fmt.Printf("key:  %s\n", key)
	fmt.Printf("hash: %s\n", utils.HashSecret(key))
}
