package main // Entry point for a POS terminal session

// The terminal binary demonstrates the session + currency wiring a till
// front end builds on: rehydrate any persisted session, log in when
// needed, resolve the station's display currency, and print a few
// formatted amounts. Credentials and endpoints come from flags/env so
// the same binary works against any backend.

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/fuelware/petrol-station-pos/internal/client"
	"github.com/fuelware/petrol-station-pos/internal/currency"
	"github.com/fuelware/petrol-station-pos/internal/session"
)

func main() {
	_ = godotenv.Load()

	var (
		baseURL     = flag.String("backend", envOr("POS_BACKEND_URL", "http://localhost:8080"), "backend base URL")
		sessionFile = flag.String("session-file", envOr("POS_SESSION_FILE", ".pos-session.json"), "persisted session path")
		username    = flag.String("user", "", "username (required unless a session is persisted)")
		password    = flag.String("pass", "", "password")
		logout      = flag.Bool("logout", false, "end the persisted session and exit")
	)
	flag.Parse()

	api := client.New(*baseURL)
	sessions := session.NewService(session.NewFileStore(*sessionFile), api)
	currencies := currency.NewService(api)

	// Keep the display currency in lockstep with the session's station.
	// The update runs on its own goroutine; a stale fetch cannot clobber
	// a newer one thanks to the service's generation guard.
	unsubscribe := sessions.Subscribe(func(s *session.Session) {
		var stationID uint64
		if s != nil {
			stationID = s.StationID
		}
		go currencies.UpdateStation(context.Background(), stationID)
	})
	defer unsubscribe()

	ctx := context.Background()
	sessions.Init(ctx)

	if *logout {
		if err := sessions.Logout(ctx); err != nil {
			log.Fatalf("logout: %v", err)
		}
		fmt.Println("logged out")
		return
	}

	if !sessions.IsAuthenticated() {
		if *username == "" || *password == "" {
			log.Fatal("no persisted session; -user and -pass required")
		}
		if err := sessions.Login(ctx, *username, *password); err != nil {
			if errors.Is(err, session.ErrAuthentication) {
				log.Fatalf("login rejected: %v", err)
			}
			log.Fatalf("login: %v", err)
		}
	}

	s := sessions.Current()
	fmt.Printf("signed in as %s (%s)\n", s.FullName, s.Role)

	// Resolve the station currency synchronously for the demo output;
	// the subscription above already kicked off the same update.
	currencies.UpdateStation(ctx, s.StationID)

	fmt.Printf("station currency: %s\n", currencies.ActiveCurrency())
	fmt.Printf("  sample sale total: %s\n", currencies.Format(15423.5))
	fmt.Printf("  monthly volume:    %s\n", currencies.FormatCompact(2_750_000))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
