// Package config defines configuration for the zli-chunk CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (ZLI_CHUNK_ prefix)
//   - YAML configuration file
//
// Flags win over environment variables, which win over the file.
//
// # Structure
//
//	type Config struct {
//	    Input        string
//	    Bin          string
//	    Workers      int
//	    ChunkSize    int64
//	    OutDir       string
//	    Progress     bool
//	    KeepFailed   bool
//	    ZstdFallback bool
//	    Store        string
//	}
package config
