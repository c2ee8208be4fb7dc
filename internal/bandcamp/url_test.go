package bandcamp

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://artist.bandcamp.com/album/x", "https://artist.bandcamp.com/album/x", false},
		{"  http://artist.bandcamp.com/music ", "http://artist.bandcamp.com/music", false},
		{"someartist", "https://someartist.bandcamp.com/music", false},
		{"Some-Artist", "https://some-artist.bandcamp.com/music", false},
		{"", "", true},
		{"ftp://artist.bandcamp.com", "", true},
		{"some artist", "", true},
		{"artist.bandcamp.com/music", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeURL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeURL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
