// hashpw печатает bcrypt-хэш пароля, чтобы вручную завести пользователя в базе.
//
//	go run ./cmd/hashpw -cost 12 secret
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"emojifeedback/internal/service"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hashpw [-cost N] <password>")
		os.Exit(2)
	}

	hash, err := service.HashPassword(flag.Arg(0), *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
