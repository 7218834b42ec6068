package diagnostics

import (
	"regexp"
	"strings"

	"github.com/moistari/rls"
)

var fileExtensionRegex = regexp.MustCompile(`(?i)\.(?:mkv|mp4|m4v|avi|wmv|mov|ts|m2ts|iso|mpg|mpeg|webm|rar|r\d{2}|zip|7z|par2|nzb|torrent|srt|nfo|sfv)$`)

// IsReleaseName reports whether a trimmed line looks like a release or file name.
// A release token alone is not enough: the line must also be dot separated into at
// least four segments or contain no whitespace, so sentences mentioning a quality
// tag are kept.
func IsReleaseName(text string) bool {
	if !hasReleaseToken(rls.ParseString(text)) {
		return false
	}

	if len(strings.Split(text, ".")) >= 4 {
		return true
	}

	return !strings.ContainsAny(text, " \t\n\r")
}

// hasReleaseToken reports whether the parser recognised a quality or episode marker
func hasReleaseToken(r rls.Release) bool {
	if r.Resolution != "" || r.Source != "" || len(r.Codec) > 0 {
		return true
	}
	return r.Series > 0 && r.Episode > 0
}

// HasFileExtension reports whether text ends with a media, archive, or sidecar extension
func HasFileExtension(text string) bool {
	return fileExtensionRegex.MatchString(text)
}
