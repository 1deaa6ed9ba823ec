package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"atrium.org/internal/auth"
)

// tokenctl mints development bearer tokens with the same claim layout the
// identity provider issues in production.
func main() {
	log.SetFlags(0)
	var (
		secret = flag.String("secret", os.Getenv("ATRIUM_AUTH_SECRET"), "Signing secret")
		issuer = flag.String("issuer", os.Getenv("ATRIUM_AUTH_ISSUER"), "Token issuer")
		email  = flag.String("email", "", "Subject email")
		roles  = flag.String("roles", "", "Comma-separated role labels")
		ttl    = flag.Duration("ttl", 8*time.Hour, "Token lifetime")
	)
	flag.Parse()

	if *secret == "" {
		log.Fatal("missing secret: provide via -secret or ATRIUM_AUTH_SECRET")
	}
	if *email == "" {
		log.Fatal("missing -email")
	}

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}

	token, err := auth.GenerateToken(*secret, *issuer, *email, roleList, *ttl)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}
	fmt.Println(token)
}
