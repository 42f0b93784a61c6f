package playlist

import (
	"regexp"
	"strings"
)

var (
	tvgIDRegex      = regexp.MustCompile(`tvg-id="([^"]*)"`)
	tvgLogoRegex    = regexp.MustCompile(`tvg-logo="([^"]*)"`)
	groupTitleRegex = regexp.MustCompile(`group-title="([^"]*)"`)
)

// extractDisplayName extracts the display name from an EXTINF line.
// The display name is the text after the last comma in
// `#EXTINF:-1 tvg-id="..." group-title="...",Channel Name`.
func extractDisplayName(extinf string) string {
	commaIdx := strings.LastIndex(extinf, ",")
	if commaIdx == -1 {
		return ""
	}
	return strings.TrimSpace(extinf[commaIdx+1:])
}

func extractAttr(re *regexp.Regexp, extinf string) string {
	matches := re.FindStringSubmatch(extinf)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// extractMetadata extracts the tvg-id, tvg-logo and group-title attributes
// from an EXTINF line. Absent attributes yield empty strings.
func extractMetadata(extinf string) (tvgID, tvgLogo, groupTitle string) {
	tvgID = extractAttr(tvgIDRegex, extinf)
	tvgLogo = extractAttr(tvgLogoRegex, extinf)
	groupTitle = extractAttr(groupTitleRegex, extinf)
	return
}
