package abi

var defaultTarget = hostTarget()

// Default returns the process-wide ABI target, built from the "host"
// profile at package initialisation and read-only thereafter. Callers
// needing more than one table should build an explicit Target via
// NewTarget or ParseProfile instead.
func Default() *Target { return defaultTarget }
