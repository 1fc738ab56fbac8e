//go:build darwin && cgo

package main

import _ "github.com/mj1618/axquery/internal/platform/darwin"
