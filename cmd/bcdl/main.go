// Command bcdl downloads albums from Bandcamp.
//
// Usage:
//
//	bcdl [flags] URL|ARTIST...
//	bcdl search [--type all|artist|album|track] QUERY
//	bcdl config
package main

func main() {
	Execute()
}
