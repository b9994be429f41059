package main

import (
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/rest"

	"pulse-api/internal/config"
	"pulse-api/internal/handler"
	"pulse-api/internal/svc"
)

var configFile = flag.String("f", "etc/pulse.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(*cfg, cfg.MainPath())
	handler.RegisterHandlers(server, ctx)

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
