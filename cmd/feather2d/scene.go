package main

import (
	"fmt"

	feather2d "github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/internal/scene"
)

// loadWorld reads a scene and places its bodies in a world using the loaded
// configuration, overridden by the scene's own solver keys.
func loadWorld(path string) (*feather2d.World, []string, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, nil, err
	}

	bodies, err := sc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("scene %s: %w", path, err)
	}

	runCfg := cfg.Override(sc.Solver)
	if err := runCfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("scene %s: %w", path, err)
	}

	logger.Debug("scene loaded", "path", path, "bodies", len(bodies), "tolerance", runCfg.Solver.Tolerance)

	return &feather2d.World{
		Bodies:  bodies,
		Workers: runCfg.Workers,
		Config:  runCfg.Solver,
	}, sc.Names(), nil
}
