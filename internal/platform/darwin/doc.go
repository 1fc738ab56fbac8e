// Package darwin provides the macOS accessibility provider, built on the
// AXUIElement API. The native parts require CGo and compile only on darwin;
// importing the package registers a platform.Session factory.
package darwin
