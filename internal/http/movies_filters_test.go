package httpserver

import (
	"net/url"
	"testing"
)

func TestBuildMovieFilter(t *testing.T) {
	tests := []struct {
		name            string
		query           string
		wantDirectorSet bool
		wantDirector    *int64
		wantGenreSet    bool
		wantGenre       *int64
		wantErr         bool
	}{
		{name: "empty", query: ""},
		{name: "director", query: "director_id=1", wantDirectorSet: true, wantDirector: int64Ptr(1)},
		{name: "genre trimmed", query: "genre_id=%207%20", wantGenreSet: true, wantGenre: int64Ptr(7)},
		{name: "both", query: "director_id=2&genre_id=3", wantDirectorSet: true, wantDirector: int64Ptr(2), wantGenreSet: true, wantGenre: int64Ptr(3)},
		{name: "blank director still present", query: "director_id=&genre_id=3", wantDirectorSet: true, wantGenreSet: true, wantGenre: int64Ptr(3)},
		{name: "blank genre", query: "genre_id=%20", wantGenreSet: true},
		{name: "invalid director", query: "director_id=abc", wantErr: true},
		{name: "invalid genre", query: "genre_id=1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			filter, err := buildMovieFilter(values)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if filter.DirectorSet != tt.wantDirectorSet || filter.GenreSet != tt.wantGenreSet {
				t.Fatalf("presence = (%v, %v), want (%v, %v)", filter.DirectorSet, filter.GenreSet, tt.wantDirectorSet, tt.wantGenreSet)
			}
			if !equalInt64Ptr(filter.DirectorID, tt.wantDirector) {
				t.Fatalf("DirectorID = %v, want %v", filter.DirectorID, tt.wantDirector)
			}
			if !equalInt64Ptr(filter.GenreID, tt.wantGenre) {
				t.Fatalf("GenreID = %v, want %v", filter.GenreID, tt.wantGenre)
			}
		})
	}
}

func FuzzBuildMovieFilter(f *testing.F) {
	seeds := []string{
		"director_id=1",
		"genre_id=2&director_id=3",
		"director_id=abc",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		_, _ = buildMovieFilter(values)
	})
}

func int64Ptr(v int64) *int64 {
	return &v
}

func equalInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
