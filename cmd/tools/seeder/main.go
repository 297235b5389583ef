package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/noah-isme/backend-vidria/internal/catalog"
)

// seeder emits the built-in demo catalog as a fixture file, or validates an
// existing fixture before it is pointed at the API via CATALOG_SEED_PATH.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	out := flag.String("out", "", "write the demo catalog fixture to this path")
	check := flag.String("check", "", "validate an existing fixture file")
	flag.Parse()

	switch {
	case *check != "":
		fixture, err := catalog.LoadFixtureFile(*check)
		if err != nil {
			log.Fatalf("fixture invalid: %v", err)
		}
		fmt.Printf("fixture ok: %d models, %d glass types, %d colors, %d services, %d adjustments\n",
			len(fixture.Models), len(fixture.GlassTypes), len(fixture.Colors), len(fixture.Services), len(fixture.Adjustments))
	case *out != "":
		data, err := json.MarshalIndent(catalog.DemoFixture(), "", "  ")
		if err != nil {
			log.Fatalf("marshal fixture: %v", err)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			log.Fatalf("write fixture: %v", err)
		}
		fmt.Printf("demo fixture written to %s\n", *out)
	default:
		flag.Usage()
		os.Exit(2)
	}
}
