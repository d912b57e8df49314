package main

// Build metadata, overridden at link time. Mirrored into the HTTP
// /version endpoint at startup.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
