package main

import (
	"log"
	"time"

	"crudadmin/internal/api"
	"crudadmin/internal/config"
	"crudadmin/internal/http/server"
	applog "crudadmin/internal/log"
	"crudadmin/internal/shell"
)

func main() {
	cfg := config.Load()
	defer applog.TeeFile(cfg.LogFile).Close()

	opts := []api.Option{api.WithUserAgent("crudadmin-console")}
	if cfg.APITimeout > 0 {
		opts = append(opts, api.WithTimeout(cfg.APITimeout))
	}
	client := api.New(cfg.APIBaseURL, opts...)

	sessions := shell.NewStore(shell.Sources{
		Products: client.Products(),
		Users:    client.Users(),
	})
	stop := make(chan struct{})
	defer close(stop)
	go sessions.RunSweeper(time.Minute, cfg.SessionIdle, stop)

	app := server.New(cfg, sessions)
	log.Printf("[console] listening on :%s, remote API %s", cfg.Port, client.BaseURL())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
