// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package sink writes rendered output to its destination and reads
// input files, with optional compression.
//
// Compression uses standard frame formats so results interoperate with
// the command-line tools: zstd frames (.zst, readable by zstd -d) and
// LZ4 frames (.lz4, readable by lz4 -d). Compressed output is written
// whole, never partially: files are written to a temporary name in the
// target directory and renamed into place.
//
// Reading picks the decompressor from the file suffix, so a values file
// named product.yaml.zst is decompressed and then parsed as YAML.
package sink
