package utils

import (
	"net/url"
	"path"
)

// MatchUrl reports whether targetUrl equals one of patternUrls, or shares its
// scheme and host while the path matches the pattern path as a path.Match glob.
// An empty path is treated as "/".
func MatchUrl(patternUrls []string, targetUrl string) bool {
	parsedTargetUrl, err := url.Parse(targetUrl)
	if err != nil {
		return false
	}
	for _, patternUrl := range patternUrls {
		if patternUrl == targetUrl {
			return true
		}
		parsedPatternUrl, errParse := url.Parse(patternUrl)
		if errParse != nil {
			continue
		}
		if parsedPatternUrl.Scheme != parsedTargetUrl.Scheme || parsedPatternUrl.Host != parsedTargetUrl.Host {
			continue
		}
		matched, errMatch := path.Match(normalizePath(parsedPatternUrl.Path), normalizePath(parsedTargetUrl.Path))
		if errMatch == nil && matched {
			return true
		}
	}
	return false
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
