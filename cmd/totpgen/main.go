package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xlzd/gotp"
)

// Prints the current TOTP passcode for a base32 secret, the same way an
// authenticator app would. Handy for poking the toggle endpoint without
// enrolling a phone.
func main() {
	secret := flag.String("secret", "", "Base32 TOTP secret (required)")
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: -secret is required")
		flag.Usage()
		os.Exit(1)
	}

	totp := gotp.NewDefaultTOTP(*secret)
	fmt.Println(totp.Now())
}
