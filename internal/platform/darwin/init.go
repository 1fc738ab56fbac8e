//go:build darwin && cgo

package darwin

import "github.com/mj1618/axquery/internal/platform"

func init() {
	platform.NewSessionFunc = func() (platform.Session, error) {
		return NewSession()
	}
}
