package render

import (
	"github.com/xuri/excelize/v2"
)

// Palette shared by every artifact.
const (
	colorHeaderFill = "C00000"
	colorHeaderText = "FFFFFF"
	colorSecondary  = "F8CBAD"
	colorZebraA     = "FFFFFF"
	colorZebraB     = "F8FBFF"
	colorSection    = "EFF3F9"
	colorHighlight  = "FFF3B0"
	colorBorder     = "D9D9D9"
)

const (
	dateFormat   = "dd/mm/yyyy"
	amountFormat = "#,##0.00"
)

const (
	minColumnWidth = 12
	maxColumnWidth = 45
)

// styleSet caches the style IDs one workbook needs. Excelize styles are
// per-file, so a fresh set is built for each artifact.
type styleSet struct {
	title     int
	banner    int
	header    int
	secondary int

	zebra       [2]int
	zebraDate   [2]int
	zebraAmount [2]int

	highlight       int
	highlightDate   int
	highlightAmount int
}

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, s := range sides {
		borders = append(borders, excelize.Border{Type: s, Color: colorBorder, Style: 1})
	}
	return borders
}

func fill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	s := &styleSet{}
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Fill:      fill(colorSection),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	s.banner, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: fill(colorSection),
	})
	if err != nil {
		return nil, err
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: colorHeaderText},
		Fill:      fill(colorHeaderFill),
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	s.secondary, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   fill(colorSecondary),
		Border: thinBorder(),
	})
	if err != nil {
		return nil, err
	}

	dateFmt := dateFormat
	amountFmt := amountFormat

	for i, color := range []string{colorZebraA, colorZebraB} {
		s.zebra[i], err = f.NewStyle(&excelize.Style{
			Fill:      fill(color),
			Border:    thinBorder(),
			Alignment: &excelize.Alignment{Vertical: "center"},
		})
		if err != nil {
			return nil, err
		}
		s.zebraDate[i], err = f.NewStyle(&excelize.Style{
			Fill:         fill(color),
			Border:       thinBorder(),
			Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			CustomNumFmt: &dateFmt,
		})
		if err != nil {
			return nil, err
		}
		s.zebraAmount[i], err = f.NewStyle(&excelize.Style{
			Fill:         fill(color),
			Border:       thinBorder(),
			Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			CustomNumFmt: &amountFmt,
		})
		if err != nil {
			return nil, err
		}
	}

	s.highlight, err = f.NewStyle(&excelize.Style{
		Fill:      fill(colorHighlight),
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	s.highlightDate, err = f.NewStyle(&excelize.Style{
		Fill:         fill(colorHighlight),
		Border:       thinBorder(),
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		CustomNumFmt: &dateFmt,
	})
	if err != nil {
		return nil, err
	}
	s.highlightAmount, err = f.NewStyle(&excelize.Style{
		Fill:         fill(colorHighlight),
		Border:       thinBorder(),
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		CustomNumFmt: &amountFmt,
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// columnWidth sizes a column to its longest content, clamped to the detail
// sheet's readable bounds.
func columnWidth(longest int) float64 {
	w := longest + 2
	if w < minColumnWidth {
		w = minColumnWidth
	}
	if w > maxColumnWidth {
		w = maxColumnWidth
	}
	return float64(w)
}
