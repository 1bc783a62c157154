// Command devtoken mints an identity token signed with AUTH_JWT_SECRET so the
// API can be exercised locally without the identity provider.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Tomlord1122/todolist/internal/auth"
	"github.com/Tomlord1122/todolist/internal/config"
)

func main() {
	var (
		sub   = flag.String("sub", "", "subject (user id) of the token, required")
		email = flag.String("email", "", "email claim")
		first = flag.String("first", "", "first_name claim")
		last  = flag.String("last", "", "last_name claim")
		image = flag.String("image", "", "profile_image_url claim")
		ttl   = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	if *sub == "" {
		fmt.Fprintln(os.Stderr, "devtoken: -sub is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadAuth()
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.Issuer, cfg.Audience)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}

	token, err := tokens.Issue(auth.Identity{
		UserID:          *sub,
		Email:           *email,
		FirstName:       *first,
		LastName:        *last,
		ProfileImageURL: *image,
	}, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
