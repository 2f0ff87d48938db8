package engine

import stealth "github.com/anatolykoptev/go-stealth"

// RandomUserAgent returns a current desktop browser User-Agent for scrapers
// that must look like a browser.
func RandomUserAgent() string { return stealth.RandomUserAgent() }
