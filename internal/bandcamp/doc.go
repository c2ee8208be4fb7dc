// Package bandcamp extracts albums and tracks from Bandcamp pages.
//
// The package handles three use cases:
//
//  1. Scraping release pages into model.Album values
//  2. Discovering releases on an artist's discography page
//  3. Searching the Bandcamp catalog
//
// # Release Pages
//
// Release data is read from one of two embedded sources, in order: the
// schema.org ld+json block and the data-tralbum script attributes. When the
// first one lacks a track URL, the track is looked up by name in the second;
// tracks that still have no URL are dropped.
//
//	album, ok := bandcamp.Scrape(doc)
//
// # Discographies
//
// Catalog dispatches on the page type and fetches every linked release
// concurrently:
//
//	catalog := bandcamp.NewCatalog(client, bandcamp.WithPageWorkers(8))
//	albums, err := catalog.FetchAlbums(ctx, "https://artist.bandcamp.com/music")
//
// # Release Dates
//
// Bandcamp uses "28 Sep 2014 04:19:31 GMT" in page data and
// "released September 28, 2014" in credit lines. ParseReleaseDate accepts
// both.
package bandcamp
