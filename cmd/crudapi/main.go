// Command crudapi serves the products/users REST API the console manages,
// backed by SQLite. It is meant for local development.
package main

import (
	"log"

	"crudadmin/internal/backend"
	"crudadmin/internal/config"
	applog "crudadmin/internal/log"
)

func main() {
	cfg := config.Load()
	defer applog.TeeFile(cfg.LogFile).Close()

	db, err := backend.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	app := backend.New(db, cfg.CORSOrigin)
	log.Printf("[api] listening on :%s, db %s", cfg.APIPort, cfg.DBDSN)
	if err := app.Listen(":" + cfg.APIPort); err != nil {
		log.Fatal(err)
	}
}
