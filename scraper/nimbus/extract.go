package nimbus

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"zero-termico/models"
)

var (
	// dateRegexp captures "15 GENNAIO 2024" headers, any letter case.
	dateRegexp = regexp.MustCompile(`(?i)(\d{1,2})\s*(GENNAIO|FEBBRAIO|MARZO|APRILE|MAGGIO|GIUGNO|LUGLIO|AGOSTO|SETTEMBRE|OTTOBRE|NOVEMBRE|DICEMBRE)\s*(\d{4})`)
	// freezingRegexp captures the min-max range of "Zero gradi a 1200-1400".
	freezingRegexp = regexp.MustCompile(`Zero gradi a (\d+)-(\d+)`)
)

// TextBlocks returns the trimmed text of every <p> element in document order.
func TextBlocks(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var blocks []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		blocks = append(blocks, strings.TrimSpace(p.Text()))
	})
	return blocks, nil
}

// Extract walks the blocks carrying the most recent date header forward and
// emits one observation per altitude range found under it. Ranges seen before
// any date are dropped. A block may carry both a date and a range; the date
// applies first. Several ranges under one date all produce observations.
func Extract(blocks []string) []models.Observation {
	var (
		out    []models.Observation
		cursor *models.Observation
	)

	for _, text := range blocks {
		if m := dateRegexp.FindStringSubmatch(text); m != nil {
			o, err := models.NewObservation(m[1]+"/"+m[2]+"/"+m[3], 0)
			if err != nil {
				// "31 APRILE 2024" is not a day; drop the previous cursor as well so
				// the ranges below it are not attributed to the wrong date.
				cursor = nil
			} else {
				cursor = &o
			}
		}

		m := freezingRegexp.FindStringSubmatch(text)
		if m == nil || cursor == nil {
			continue
		}
		low, errLow := strconv.Atoi(m[1])
		high, errHigh := strconv.Atoi(m[2])
		if errLow != nil || errHigh != nil {
			continue
		}

		o := *cursor
		o.Level = (low + high) / 2
		out = append(out, o)
	}
	return out
}
