// Package main provides the entry point for the spdrs CLI.
//
// spdrs is a same-origin web crawler. Given a seed URL it fetches pages
// concurrently, extracts links from anchor and link elements, and prints
// each visited page together with the in-scope links found on it.
//
// Usage:
//
//	spdrs <url>
//	spdrs history
//
// See --help for all available options.
package main

// main is the entry point for spdrs.
func main() {
	Execute()
}
