//go:build !(js && wasm)

package utils

func platformDefaults(*Config) {}
