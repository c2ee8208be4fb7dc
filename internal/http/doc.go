// Package http provides an HTTP client configured for Bandcamp requests.
//
// The Client in this package handles:
//   - The process-wide User-Agent header
//   - Page and API requests with timeouts
//   - Streaming audio transfers split into Prepare and Start
//   - Proxy selection
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch HTML page
//	html, err := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
//
// # Transfers
//
// Prepare validates a URL and builds its request without sending it, so a
// batch can be checked up front. Start sends it and hands back the body:
//
//	t, err := client.Prepare(ctx, mp3URL)
//	body, total, err := client.Start(t)
//	defer body.Close()
//
// Every failure is an *errs.Error of kind errs.KindHTTP. Non-2xx responses
// wrap a *StatusError.
package http
