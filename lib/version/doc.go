// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for recordjson.
//
// Four package-level variables are injected at build time via
// -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/recordjson/recordjson/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When they are not injected (go install, development builds), [Current]
// fills the commit, dirty flag and time from the VCS stamps in the
// binary's embedded build information.
//
//   - [Info] -- "0.1.0-dev (abc1234, 2026-02-10T...)" for --version
//   - [Full] -- Info plus Go version and GOOS/GOARCH
//   - [Short] -- just the version number
package version
