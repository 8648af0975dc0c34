package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Mints a signed access token for exercising the panel API locally.
func main() {
	secret := flag.String("secret", "very-secure-jwt-secret", "Secret key for signing the token")
	userID := flag.String("user-id", "", "User UUID to place in the token (required)")
	email := flag.String("email", "dev@example.com", "Email claim")
	roles := flag.String("roles", "user", "Comma-separated roles (e.g. user,admin)")
	expiry := flag.Duration("expiry", 30*time.Minute, "Token expiry duration (e.g., 30m, 1h, 24h)")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "Error: -user-id is required")
		flag.Usage()
		os.Exit(1)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     *userID,
		"iat":     now.Unix(),
		"exp":     now.Add(*expiry).Unix(),
		"user_id": *userID,
		"extra_claims": map[string]interface{}{
			"email": *email,
			"roles": strings.Split(*roles, ","),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(*secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(tokenStr)
}
