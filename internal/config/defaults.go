package config

import (
	_ "embed"
)

//go:embed defaults/solver.yaml
var defaultSolverYAML []byte
