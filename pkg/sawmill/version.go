// Package sawmill holds project-wide metadata shared by the CLI and build
// tooling.
package sawmill

// Version is the sawmill release version, updated at tag time.
const Version = "0.3.0"
