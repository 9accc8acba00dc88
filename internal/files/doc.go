// Package files discovers input files for a pipeline run.
//
// Listings are always sorted by file name so that concatenation order, and
// therefore which duplicate record survives, does not depend on the
// platform's directory iteration order.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//	inputs, err := discovery.ListFiles("data/input")
package files
