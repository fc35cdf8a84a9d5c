// One-off: go run scripts/genhash.go <password>
// Prints a bcrypt hash for provisioning an admin row:
//
//	INSERT INTO admins (email, password_hash) VALUES ('admin@example.com', '<hash>');
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := "admin"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		panic(err)
	}
	fmt.Print(string(h))
}
