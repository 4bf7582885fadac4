package main

import (
	"log"
	"net/http"

	"github.com/bracketeer/bracket/internal/api"
	"github.com/bracketeer/bracket/internal/config"
	"github.com/bracketeer/bracket/internal/realtime"
	"github.com/bracketeer/bracket/internal/repository"
)

func main() {
	config.LoadDotEnv()

	dbCfg := config.LoadDatabaseConfig()
	db, err := config.NewDatabaseConnection(dbCfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := repository.NewBracketRepository(db)

	hub := realtime.NewHub()
	go hub.Run()

	router := api.NewRouter(repo, hub)

	port := config.ServicePort()
	log.Printf("Bracket service starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
