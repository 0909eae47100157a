package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"journal/internal/app"
	"journal/internal/auth"
	"journal/internal/config"
	journalModels "journal/internal/domain/models/journal"
	journalSvc "journal/internal/domain/services/journal"
	"journal/internal/repository/postgres"
	serviceJournal "journal/internal/service/journal"

	"github.com/joho/godotenv"
)

type seedEntry struct {
	daysAgo int
	title   string
	content string
}

var seedEntries = []seedEntry{
	{0, "First day", "Met the team, set up my laptop and read through the onboarding docs."},
	{1, "Pairing session", "Paired on the image upload flow. Learned that the upload has to finish before the entry is written."},
	{3, "Demo prep", "Put together slides for Friday's demo. Need a screenshot of the journal screen."},
}

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop the journals table before seeding (postgres only)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up the schema, don't seed entries")
	internEmail := flag.String("intern-email", "intern@example.com", "Email of the test intern account")
	internPassword := flag.String("intern-password", "", "Password of the test intern account (skips account creation when empty)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	logger, closeLog := app.NewLogger(cfg, os.Stdout)
	defer closeLog()

	ctx := context.Background()
	log.Printf("🌱 Seeding journal (environment: %s, document store: %s)", cfg.Environment, cfg.DocumentStore)

	if *dropTables {
		if cfg.DocumentStore != config.DocumentStorePostgres {
			log.Fatalf("--drop-tables requires DOCUMENT_STORE=postgres")
		}
		pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		log.Println("🗑️  Dropping journals table...")
		err = postgres.DropSchema(ctx, pool, postgres.NewTableNames(cfg.TablePrefix))
		pool.Close()
		if err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Opening the stores creates the schema
	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open stores: %v", err)
	}
	defer stores.Close()
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *internPassword != "" {
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			log.Fatalf("SUPABASE_URL and SUPABASE_KEY are required to create the intern account")
		}
		admin := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
		if err := admin.DeleteUserByEmail(ctx, *internEmail); err != nil {
			log.Fatalf("Failed to remove existing intern account: %v", err)
		}
		id, err := admin.CreateUser(ctx, *internEmail, *internPassword, map[string]interface{}{"role": "intern"})
		if err != nil {
			log.Fatalf("Failed to create intern account: %v", err)
		}
		log.Printf("👤 Created intern %s (ID: %s)", *internEmail, id)
	}

	entries := serviceJournal.NewEntryService(stores.Entries, stores.Blobs, logger)
	today := time.Now()
	for i, e := range seedEntries {
		key := journalModels.KeyFor(today.AddDate(0, 0, -e.daysAgo))
		entry, err := entries.SaveEntry(ctx, &journalSvc.SaveEntryRequest{
			DateKey: key,
			Title:   e.title,
			Content: e.content,
		})
		if err != nil {
			log.Printf("❌ Failed to save entry for %s: %v", key, err)
			continue
		}
		log.Printf("✅ Saved entry %d/%d: %s (%s)", i+1, len(seedEntries), entry.Title, entry.Date)
	}

	log.Println("🎉 Seeding complete!")
}
