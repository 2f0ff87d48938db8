// Package sources holds the YouTube clients behind the quiz content chain.
//
// Files by responsibility:
//
//	youtube_url.go        video ID extraction from youtu.be / watch URLs
//	youtube_innertube.go  watch-page player response and timedtext types
//	youtube_transcript.go transcript tracks scraped from the watch page
//	youtube_data.go       Data API v3: video metadata, caption list and download
//	srt.go                SRT caption track to plain text
package sources
