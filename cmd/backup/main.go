package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"grouplink/internal/config"
	"grouplink/internal/database"
	"grouplink/internal/service"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: invites_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing entries before import (WARNING: destructive)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	backupService := service.NewBackupService(db)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		output := *exportOutput
		if output == "" {
			output = fmt.Sprintf("invites_%s.json", time.Now().Format("20060102_150405"))
		}
		count, err := backupService.Export(output)
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("Exported %d entries to %s\n", count, output)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		count, err := backupService.Import(*importInput, *importClear)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported %d entries from %s\n", count, *importInput)

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: backup <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export    Export the invite keyspace to a JSON file")
	fmt.Println("  import    Import invite entries from a JSON file")
}
