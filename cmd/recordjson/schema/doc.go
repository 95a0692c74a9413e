// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema implements "recordjson schema": validating,
// describing, and fingerprinting schema definition files.
package schema
