// Package render builds the output workbooks from the final record sequence:
// the styled detail sheet, the accounting summary, and the per-account CP/CB
// templates. Sub-renderers are independent; one failing never aborts the
// others.
package render

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MIMEXLSX is the content type every artifact is sent with.
const MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Artifact is one finished workbook, ready to attach or write to disk.
type Artifact struct {
	Filename string
	MIME     string
	Content  []byte
}

const timestampLayout = "20060102_150405"

var unsafeFilenameChars = regexp.MustCompile(`[^\w\s-]`)

// OutputFilename derives the artifact name from the input attachment name, a
// kind suffix such as "formateado" or "CP", and the generation time.
func OutputFilename(originalName, kind string, now time.Time) string {
	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	return fmt.Sprintf("%s_%s_%s.xlsx", base, kind, now.Format(timestampLayout))
}

// AccountFilename is OutputFilename with the account name spliced in, for
// the CP/CB templates. The account component is sanitized so the bank's
// free-text product banner cannot break the filename.
func AccountFilename(originalName, accountName, kind string, now time.Time) string {
	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	safe := sanitizeFilenamePart(accountName)
	if safe == "" {
		return fmt.Sprintf("%s_%s_%s.xlsx", base, kind, now.Format(timestampLayout))
	}
	return fmt.Sprintf("%s_%s_%s_%s.xlsx", base, safe, kind, now.Format(timestampLayout))
}

func sanitizeFilenamePart(s string) string {
	clean := unsafeFilenameChars.ReplaceAllString(s, "")
	return strings.ReplaceAll(strings.TrimSpace(clean), " ", "_")
}
