package main

import (
	"context"

	"github.com/cardcore/cardcore/internal/client/cli"
	"github.com/cardcore/cardcore/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
