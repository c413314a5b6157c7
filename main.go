package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/customeros/notestack/config"
	"github.com/customeros/notestack/internal/database"
	"github.com/customeros/notestack/internal/repository"
	"github.com/customeros/notestack/server"
)

func main() {
	app := &cli.App{
		Name:  "notestack",
		Usage: "per-user notes API with image attachments",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Run database migrations",
				Action: runMigrate,
			},
			{
				Name:   "server",
				Usage:  "Start the application server",
				Action: runServer,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runMigrate(c *cli.Context) error {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Config initialization failed: %v", err)
	}

	notestackDB, err := database.InitNotestackDatabase(cfg.NotestackDatabaseConfig)
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	if err := repository.MigrateDB(notestackDB); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	log.Println("Database migration completed successfully")
	return nil
}

func runServer(c *cli.Context) error {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Config initialization failed: %v", err)
	}

	notestackDB, err := database.InitNotestackDatabase(cfg.NotestackDatabaseConfig)
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("NoteStack starting up...")

	srv, err := server.NewServer(cfg, notestackDB)
	if err != nil {
		log.Fatalf("Server setup failed: %v", err)
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("Server startup failed: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}
