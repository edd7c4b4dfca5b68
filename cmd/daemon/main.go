package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ronak4/BGP-Router/internal/config"
	"github.com/ronak4/BGP-Router/internal/kernelsync"
	"github.com/ronak4/BGP-Router/internal/neighbor"
	"github.com/ronak4/BGP-Router/internal/router"
	"github.com/ronak4/BGP-Router/internal/telemetry"
	"github.com/ronak4/BGP-Router/internal/transport"
	"github.com/ronak4/BGP-Router/pkg/logging"
)

var enableKernelSync = flag.Bool("kernel-sync", false, "mirror RIB entries into the real Linux FIB")

func main() {
	flag.Parse()

	cfg, err := config.Parse(flag.Args())
	if err != nil {
		logging.Errorf("startup failed: %v", err)
		os.Exit(1)
	}

	neighbors := make([]neighbor.Neighbor, 0, len(cfg.Descriptors))
	for _, d := range cfg.Descriptors {
		neighbors = append(neighbors, neighbor.Neighbor{Address: d.NeighborAddr, Relation: d.Relation})
	}
	registry := neighbor.NewRegistry(neighbors)

	t, err := transport.Dial(cfg.Descriptors)
	if err != nil {
		logging.Errorf("failed to dial neighbors: %v", err)
		os.Exit(1)
	}
	defer t.Close()

	r := router.New(cfg.ASN, registry, t)
	if *enableKernelSync {
		syncer := kernelsync.New()
		r.KernelSync = syncer
		defer syncer.RemoveAll()
	}

	go telemetry.Serve()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logging.Info("received termination signal")
		cancel()
	}()

	r.Run(ctx)
}
