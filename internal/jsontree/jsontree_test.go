package jsontree

import (
	"errors"
	"reflect"
	"testing"
)

const albumJSON = `{
	"name": "Ambient Works",
	"keywords": ["ambient", " drone ", ""],
	"numTracks": 2,
	"byArtist": {"name": "Some Artist", "image": null},
	"track": {"itemListElement": [
		{"position": 1, "item": {"name": "First", "additionalProperty": [
			{"name": "duration_secs", "value": 61.5},
			{"name": "file_mp3-128", "value": "https://t4.bcbits.com/1"}
		]}},
		{"position": 2, "item": {"name": "Second.Part", "additionalProperty": []}}
	]},
	"free": true
}`

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, err := ParseString(s)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	return v
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "{", `{"a": }`, `{"a":1} trailing`} {
		if _, err := ParseString(in); !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseString(%q) error = %v, want ErrInvalid", in, err)
		}
	}
}

func TestParse_Kinds(t *testing.T) {
	v := mustParse(t, albumJSON)

	tests := []struct {
		path string
		want Kind
	}{
		{"", Object},
		{"name", String},
		{"keywords", Array},
		{"numTracks", Number},
		{"byArtist", Object},
		{"byArtist.image", Null},
		{"free", Bool},
		{"missing", Null},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := v.Get(tt.path).Kind(); got != tt.want {
				t.Errorf("Get(%q).Kind() = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGet_Paths(t *testing.T) {
	v := mustParse(t, albumJSON)

	tests := []struct {
		name string
		path string
		want string
		ok   bool
	}{
		{"key", "name", "Ambient Works", true},
		{"nested", "byArtist.name", "Some Artist", true},
		{"index", "keywords.1", " drone ", true},
		{"index out of range", "keywords.9", "", false},
		{"filter", "track.itemListElement.0.item.additionalProperty.#(name=file_mp3-128).value", "https://t4.bcbits.com/1", true},
		{"filter no match", "track.itemListElement.1.item.additionalProperty.#(name=file_mp3-128).value", "", false},
		{"filter on number", "track.itemListElement.#(position=2).item.name", "Second.Part", true},
		{"number text", "track.itemListElement.0.item.additionalProperty.0.value", "61.5", true},
		{"missing", "byArtist.url", "", false},
		{"key on array", "keywords.name", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.Get(tt.path).Text()
			if ok != tt.ok || got != tt.want {
				t.Errorf("Get(%q).Text() = %q, %v, want %q, %v", tt.path, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLookup_ExplicitNull(t *testing.T) {
	v := mustParse(t, albumJSON)

	got, ok := v.Lookup("byArtist.image")
	if !ok || !got.IsNull() {
		t.Errorf("Lookup(byArtist.image) = %v, %v, want null, true", got.Kind(), ok)
	}
	if _, ok := v.Lookup("byArtist.nothing"); ok {
		t.Error("Lookup of missing key should report false")
	}
}

func TestValue_Accessors(t *testing.T) {
	v := mustParse(t, albumJSON)

	if n, ok := v.Get("numTracks").Int(); !ok || n != 2 {
		t.Errorf("Int() = %d, %v", n, ok)
	}
	if b, ok := v.Get("free").Boolean(); !ok || !b {
		t.Errorf("Boolean() = %v, %v", b, ok)
	}
	if _, ok := v.Get("name").Num(); ok {
		t.Error("Num() on string should fail")
	}
	if got := len(v.Get("keywords").Items()); got != 3 {
		t.Errorf("len(Items()) = %d, want 3", got)
	}
	wantKeys := []string{"name", "keywords", "numTracks", "byArtist", "track", "free"}
	if got := v.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Errorf("Keys() = %v, want %v", got, wantKeys)
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a.b.0", []string{"a", "b", "0"}},
		{"a.#(name=file.mp3).value", []string{"a", "#(name=file.mp3)", "value"}},
	}
	for _, tt := range tests {
		if got := splitPath(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitPath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
