package main

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"go-portfolio-backend/config"
	"go-portfolio-backend/pkg/accesskey"
)

// Prints an admin URL that is valid right now.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	now := time.Now()
	var key string
	if cfg.AdminKeyMode == "signed" {
		keys := accesskey.SignedKeys{
			Secret: []byte(cfg.AdminSigningSecret),
			TTL:    time.Duration(cfg.AdminSignedKeyTTLSecs) * time.Second,
		}
		if key, err = keys.Mint(now); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Printf("Valid for %s\n", keys.TTL)
	} else {
		key = accesskey.MintKey(now, cfg.AdminAccessCode)
		fmt.Printf("Valid until %s\n", now.Truncate(time.Minute).Add(time.Minute).Format("15:04:05"))
	}

	fmt.Printf("Key: %s\nURL: %s%s?key=%s\n", key, cfg.SiteURL, cfg.AdminPathPrefix, url.QueryEscape(key))
}
