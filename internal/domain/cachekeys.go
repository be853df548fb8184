package domain

import (
	"regexp"
	"strings"
)

// Cache keys are lowercase and colon-delimited so that the same logical
// request always derives the same key regardless of identifier casing.

var reWhitespace = regexp.MustCompile(`\s+`)

func EpisodesKey(provider, mediaID string) string {
	return strings.ToLower("episodes:anime:" + provider + ":" + mediaID)
}

func EpisodeSourcesKey(provider, episodeID, category, server string) string {
	return strings.ToLower("episode:anime:" + provider + ":" + episodeID + ":" + category + ":" + server)
}

func EpisodeKey(provider, episodeID string) string {
	return strings.ToLower("episode:anime:" + provider + ":" + episodeID)
}

func ServersKey(provider, episodeID string) string {
	return strings.ToLower("servers:anime:" + provider + ":" + episodeID)
}

func ServerKey(provider, episodeID, serverID string) string {
	return strings.ToLower("server:anime:" + provider + ":" + episodeID + ":" + serverID)
}

func SearchKey(provider, query string) string {
	slug := reWhitespace.ReplaceAllString(strings.TrimSpace(query), "-")
	return strings.ToLower("search:anime:" + provider + ":" + slug)
}

func InfoKey(provider, animeID string) string {
	return strings.ToLower("info:anime:" + provider + ":" + animeID)
}

func LatestKey(provider, kind string) string {
	return strings.ToLower("latest:anime:" + provider + ":" + kind)
}

func HomeKey(provider string) string {
	return strings.ToLower("home:anime:" + provider)
}
