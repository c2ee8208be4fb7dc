// Package download turns resolved albums into tagged files on disk.
//
// # Manager
//
// The Manager coordinates the entire download process:
//
//  1. Parse input URLs and artist names
//  2. Fetch album information from Bandcamp
//  3. Plan one Request per downloadable track
//  4. Run the Engine over all requests
//  5. Write playlists (optional)
//
// # Basic Usage
//
//	manager := download.NewManager(settings, logger, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx, "https://artist.bandcamp.com/album/name"); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := manager.StartDownloads(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Engine
//
// The Engine multiplexes every transfer through one event loop. Each
// request is registered under a Token that is never reused, and exactly
// one Outcome is reported per Token through the Sink, even when ctx is
// cancelled mid-run. Finished bodies go to a Handler on a bounded worker
// pool; the Pipeline is the Handler used in practice.
//
// # Pipeline
//
// The Pipeline writes each body to a new file, refusing to overwrite an
// existing one, then embeds ID3v2.4 tags and cover art. A tagging failure
// is reported but the audio file is kept.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// Byte and file counters are available from Manager.GetProgress.
package download
