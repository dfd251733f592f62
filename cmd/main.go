package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/app"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/config"
)

func main() {
	cfg := config.LoadGlobalConfig()

	unsugared, err := createLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	zap.ReplaceGlobals(unsugared)
	logger := unsugared.Sugar()

	app.Run(cfg, logger)
}

func createLogger(cfg config.Config) (logger *zap.Logger, err error) {
	if cfg.Development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger, nil
}
