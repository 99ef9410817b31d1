// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the files-manager command-line client.
//
// Each invocation runs one subcommand against the API through an
// [adapter.ServerAdapter]. The session token obtained by "connect" is kept
// in a small file between invocations and can optionally be copied to the
// system clipboard.
package client
