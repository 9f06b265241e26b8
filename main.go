package main

import (
	"os"

	"forum-app/post-service/internal"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := internal.Run(); err != nil {
		log.Fatal().Err(err).Msg("post service exited")
	}
}
