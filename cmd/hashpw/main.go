// Command hashpw prints a bcrypt hash for ADMIN_PASSWORD_HASH.
//
//	hashpw 'my operator password'
//	echo 'my operator password' | hashpw
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"deck-of-cards-go/internal/auth"
)

func main() {
	var plain string
	if len(os.Args) > 1 {
		plain = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
			os.Exit(2)
		}
		plain = strings.TrimRight(line, "\r\n")
	}

	hash, err := auth.HashPassword(plain)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
