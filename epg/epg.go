// Package epg turns raw XMLTV schedule documents into the directory's
// programme guide.
package epg

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/shanny/iptv-directory/domain"
)

// timeLayout is the XMLTV timestamp format: 14-digit date-time plus zone
// offset, e.g. "20240301180000 +0100".
const timeLayout = "20060102150405 -0700"

// timeLayoutNoZone covers feeds that omit the offset; such timestamps are
// read as UTC.
const timeLayoutNoZone = "20060102150405"

// defaultTitle replaces a missing programme title.
const defaultTitle = "No Title"

// tvXML is the root element of an XMLTV document.
type tvXML struct {
	XMLName    xml.Name       `xml:"tv"`
	Programmes []programmeXML `xml:"programme"`
}

// programmeXML is one programme element.
type programmeXML struct {
	Channel     string `xml:"channel,attr"`
	Start       string `xml:"start,attr"`
	Stop        string `xml:"stop,attr"`
	Title       string `xml:"title"`
	Description string `xml:"desc"`
}

// Ingest parses raw XMLTV content into a guide keyed by the document's
// channel identifiers, preserving per-channel source order. Programmes whose
// timestamps do not parse are dropped; their count is returned so the caller
// can log it. A document that does not decode yields an error and no partial
// guide.
func Ingest(raw []byte) (domain.Guide, int, error) {
	var tv tvXML
	if err := xml.Unmarshal(raw, &tv); err != nil {
		return nil, 0, fmt.Errorf("epg: parsing XMLTV document: %w", err)
	}

	guide := domain.Guide{}
	skipped := 0

	for _, prog := range tv.Programmes {
		start, err := parseTime(prog.Start)
		if err != nil {
			skipped++
			continue
		}
		stop, err := parseTime(prog.Stop)
		if err != nil {
			skipped++
			continue
		}

		title := strings.TrimSpace(prog.Title)
		if title == "" {
			title = defaultTitle
		}

		guide[prog.Channel] = append(guide[prog.Channel], domain.ProgramEntry{
			Start:       start,
			End:         stop,
			Title:       title,
			Description: strings.TrimSpace(prog.Description),
		})
	}

	return guide, skipped, nil
}

func parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(timeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(timeLayoutNoZone, value)
}
