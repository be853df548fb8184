package domain

import "testing"

func TestCacheKeysAreCaseInsensitive(t *testing.T) {
	if EpisodesKey("HiAnime", "One-Piece-100") != EpisodesKey("hianime", "one-piece-100") {
		t.Fatalf("EpisodesKey must ignore identifier casing")
	}
	if EpisodeSourcesKey("hianime", "EP?id=1", "SUB", "HD-1") != EpisodeSourcesKey("hianime", "ep?id=1", "sub", "hd-1") {
		t.Fatalf("EpisodeSourcesKey must ignore identifier casing")
	}
}

func TestCacheKeyShapes(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{EpisodesKey("hianime", "one-piece-100"), "episodes:anime:hianime:one-piece-100"},
		{EpisodeSourcesKey("hianime", "ep-1", "sub", "hd-1"), "episode:anime:hianime:ep-1:sub:hd-1"},
		{EpisodeKey("toonstream", "ep-9"), "episode:anime:toonstream:ep-9"},
		{ServersKey("hianime", "ep-1"), "servers:anime:hianime:ep-1"},
		{ServerKey("toonstream", "ep-9", "vid-1"), "server:anime:toonstream:ep-9:vid-1"},
		{InfoKey("toonstream", "bleach"), "info:anime:toonstream:bleach"},
		{LatestKey("toonstream", "series"), "latest:anime:toonstream:series"},
		{HomeKey("toonstream"), "home:anime:toonstream"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("want %q, got %q", c.want, c.got)
		}
	}
}

func TestSearchKeySlugsWhitespace(t *testing.T) {
	if got := SearchKey("hianime", "  One   Piece "); got != "search:anime:hianime:one-piece" {
		t.Fatalf("unexpected search key: %q", got)
	}
	if SearchKey("hianime", "One Piece") != SearchKey("HIANIME", "one piece") {
		t.Fatalf("SearchKey must normalize casing")
	}
}
