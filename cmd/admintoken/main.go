// Command admintoken mints admin tokens for the settings page and API, or a
// fresh ADMIN_TOKEN_KEY with -generate-key.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/joho/godotenv"

	"translationgate/internal/infrastructure/auth"
)

func main() {
	var (
		subject      = flag.String("subject", "admin", "token subject (host user login)")
		capabilities = flag.String("capabilities", "manage_options", "comma-separated capabilities")
		ttl          = flag.Duration("ttl", 12*time.Hour, "token lifetime")
		generateKey  = flag.Bool("generate-key", false, "print a new ADMIN_TOKEN_KEY and exit")
	)
	flag.Parse()

	if *generateKey {
		fmt.Println(paseto.NewV4SymmetricKey().ExportHex())
		return
	}

	_ = godotenv.Load()
	tokens, err := auth.NewTokenService(os.Getenv("ADMIN_TOKEN_KEY"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "admintoken: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tokens.IssueAdminToken(*subject, splitList(*capabilities), *ttl))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
