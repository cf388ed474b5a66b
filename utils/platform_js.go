//go:build js && wasm

package utils

import "syscall/js"

// platformDefaults draws on the page canvas and fills the browser window.
func platformDefaults(c *Config) {
	c.Renderer = RendererCanvas
	window := js.Global()
	if w, h := window.Get("innerWidth"), window.Get("innerHeight"); w.Truthy() && h.Truthy() {
		c.ViewportWidth = w.Int()
		c.ViewportHeight = h.Int()
	}
}
