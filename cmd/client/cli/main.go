package main

import (
	"context"
	"log"

	"github.com/dkovalev7/scentshop/internal/client/cli"
	"github.com/dkovalev7/scentshop/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
