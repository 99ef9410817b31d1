// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned by NewServer when no HTTP handler or
// listen address is configured.
var errNoServersAreCreated = errors.New("no servers are created")
