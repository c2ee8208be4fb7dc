package download

import (
	"github.com/samber/lo"

	"github.com/handiism/bcdl/internal/errs"
	ioutils "github.com/handiism/bcdl/internal/io"
	"github.com/handiism/bcdl/internal/model"
)

// PlanOptions controls how albums are expanded into requests.
type PlanOptions struct {
	// Root is the downloads directory. Albums go to Root/<artist>/<album>.
	Root string

	Naming *model.TrackConfig

	// SkipAlbums lists album titles that are not downloaded at all.
	SkipAlbums []string

	// DryRun resolves paths without creating directories.
	DryRun bool
}

// SkipReason says why a track was left out of a plan.
type SkipReason string

const (
	SkipAlbumExcluded SkipReason = "album excluded"
	SkipMissingFields SkipReason = "missing name or url"
	SkipFileExists    SkipReason = "already downloaded"
)

// Skipped is a track that will not be requested.
type Skipped struct {
	Album  *model.Album
	Track  *model.Track
	Reason SkipReason
}

// Plan is the work derived from a catalog.
type Plan struct {
	Requests []Request
	Skipped  []Skipped

	// Dirs maps each planned album to its directory.
	Dirs map[*model.Album]string
}

// AlbumRequests returns the requests for one album in track order.
func (p *Plan) AlbumRequests(album *model.Album) []Request {
	return lo.Filter(p.Requests, func(r Request, _ int) bool {
		return r.Album == album
	})
}

// BuildPlan expands albums into requests. Tracks without a name or URL and
// tracks whose file already exists are skipped, as are albums listed in
// SkipAlbums. Album directories are created unless DryRun is set.
func BuildPlan(albums []*model.Album, opts PlanOptions) (*Plan, error) {
	plan := &Plan{Dirs: make(map[*model.Album]string)}

	for _, album := range albums {
		if lo.Contains(opts.SkipAlbums, album.Title) {
			for _, t := range album.Tracks {
				plan.Skipped = append(plan.Skipped, Skipped{Album: album, Track: t, Reason: SkipAlbumExcluded})
			}
			continue
		}

		dir := ioutils.AlbumDir(opts.Root, album.Artist, album.Title)
		if !opts.DryRun && len(album.DownloadableTracks()) > 0 {
			if _, err := ioutils.EnsureAlbumDir(opts.Root, album.Artist, album.Title); err != nil {
				return nil, errs.New(errs.KindIO, dir, err)
			}
		}
		plan.Dirs[album] = dir

		for _, t := range album.Tracks {
			req := Request{Album: album, Track: t, Dir: dir}
			switch {
			case t.HasMissingFields():
				plan.Skipped = append(plan.Skipped, Skipped{Album: album, Track: t, Reason: SkipMissingFields})
			case ioutils.Exists(req.Path(opts.Naming)):
				plan.Skipped = append(plan.Skipped, Skipped{Album: album, Track: t, Reason: SkipFileExists})
			default:
				plan.Requests = append(plan.Requests, req)
			}
		}
	}

	return plan, nil
}
