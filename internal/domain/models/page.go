package models

// Page selects how prices are displayed.
type Page int

const (
	// PageNative shows prices in the instrument's own quote currency.
	PageNative Page = iota
	// PageConverted shows prices in the secondary display currency.
	PageConverted
)

func (p Page) String() string {
	if p == PageConverted {
		return "converted"
	}
	return "native"
}

// Next cycles to the following page.
func (p Page) Next() Page {
	if p == PageNative {
		return PageConverted
	}
	return PageNative
}
