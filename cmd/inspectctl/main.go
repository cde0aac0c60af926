package main

import (
	"flag"

	"github.com/danmuck/ghcbctl/internal/config"
	"github.com/danmuck/ghcbctl/internal/observability"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "cmd/inspectctl/config.toml", "inspector config path")
	flag.Parse()

	observability.InitLogger("inspectctl")
	cfg, err := config.LoadInspectConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load inspector config")
	}
	log.Info().Str("path", *configPath).Msg("loaded inspector config")

	server := config.InspectServer(cfg)
	log.Info().Str("id", server.ID).Str("addr", server.Addr).Msg("inspector started")
	if err := server.Serve(); err != nil {
		log.Fatal().Err(err).Msg("inspector stopped")
	}
}
