// Package configs provides the embedded configuration template for
// topo.
//
// The template is embedded at build time with //go:embed so it is
// available in every distribution (source builds, binary releases,
// package manager installs) without a separate asset to ship.
//
// It is written by `topo config init` to <root>/.topo/config.yaml and
// read back by internal/config.Load, which layers hardcoded defaults,
// the project file, and TOPO_* environment variables in that order.
package configs

import _ "embed"

// ConfigTemplate is the template written by `topo config init` to
// <root>/.topo/config.yaml. It documents every field internal/config
// understands; unset fields fall back to internal/config.NewConfig's
// defaults.
//
//go:embed config.example.yaml
var ConfigTemplate string
