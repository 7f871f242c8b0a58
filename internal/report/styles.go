package report

import "github.com/xuri/excelize/v2"

const highlightFill = "FFF2CC"

// styleSet holds the workbook style IDs built once per assembly. Each
// numeric style exists in a plain and a highlighted variant so the top-3
// rows keep their number formats under the fill.
type styleSet struct {
	title   int
	header  int
	verdict int

	number  int
	price   int
	percent int

	plainHi   int
	numberHi  int
	priceHi   int
	percentHi int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	var (
		st  styleSet
		err error
	)

	priceFmt := "$#,##0.00"
	hiFill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{highlightFill}}

	if st.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return nil, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
	}); err != nil {
		return nil, err
	}
	if st.verdict, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	}); err != nil {
		return nil, err
	}

	if st.number, err = f.NewStyle(&excelize.Style{NumFmt: 2}); err != nil {
		return nil, err
	}
	if st.price, err = f.NewStyle(&excelize.Style{CustomNumFmt: &priceFmt}); err != nil {
		return nil, err
	}
	if st.percent, err = f.NewStyle(&excelize.Style{NumFmt: 10}); err != nil {
		return nil, err
	}

	if st.plainHi, err = f.NewStyle(&excelize.Style{Fill: hiFill}); err != nil {
		return nil, err
	}
	if st.numberHi, err = f.NewStyle(&excelize.Style{NumFmt: 2, Fill: hiFill}); err != nil {
		return nil, err
	}
	if st.priceHi, err = f.NewStyle(&excelize.Style{CustomNumFmt: &priceFmt, Fill: hiFill}); err != nil {
		return nil, err
	}
	if st.percentHi, err = f.NewStyle(&excelize.Style{NumFmt: 10, Fill: hiFill}); err != nil {
		return nil, err
	}

	return &st, nil
}

// pick maps a base style to its highlighted variant when hi is set. A zero
// base means no numeric format, plain fill only.
func (s *styleSet) pick(base int, hi bool) int {
	if !hi {
		return base
	}
	switch base {
	case s.number:
		return s.numberHi
	case s.price:
		return s.priceHi
	case s.percent:
		return s.percentHi
	default:
		return s.plainHi
	}
}
