package chart

import "fmt"

// Sequential ColorBrewer scales, 3 to 9 colors, as rgb() strings.
// Index 0 holds the 3-color scale.
var gnbu = [][]string{
	{"rgb(224,243,219)", "rgb(168,221,181)", "rgb(67,162,202)"},
	{"rgb(240,249,232)", "rgb(186,228,188)", "rgb(123,204,196)", "rgb(43,140,190)"},
	{"rgb(240,249,232)", "rgb(186,228,188)", "rgb(123,204,196)", "rgb(67,162,202)", "rgb(8,104,172)"},
	{"rgb(240,249,232)", "rgb(204,235,197)", "rgb(168,221,181)", "rgb(123,204,196)", "rgb(67,162,202)", "rgb(8,104,172)"},
	{"rgb(240,249,232)", "rgb(204,235,197)", "rgb(168,221,181)", "rgb(123,204,196)", "rgb(78,179,211)", "rgb(43,140,190)", "rgb(8,88,158)"},
	{"rgb(247,252,240)", "rgb(224,243,219)", "rgb(204,235,197)", "rgb(168,221,181)", "rgb(123,204,196)", "rgb(78,179,211)", "rgb(43,140,190)", "rgb(8,88,158)"},
	{"rgb(247,252,240)", "rgb(224,243,219)", "rgb(204,235,197)", "rgb(168,221,181)", "rgb(123,204,196)", "rgb(78,179,211)", "rgb(43,140,190)", "rgb(8,104,172)", "rgb(8,64,129)"},
}

var orrd = [][]string{
	{"rgb(254,232,200)", "rgb(253,187,132)", "rgb(227,74,51)"},
	{"rgb(254,240,217)", "rgb(253,204,138)", "rgb(252,141,89)", "rgb(215,48,31)"},
	{"rgb(254,240,217)", "rgb(253,204,138)", "rgb(252,141,89)", "rgb(227,74,51)", "rgb(179,0,0)"},
	{"rgb(254,240,217)", "rgb(253,212,158)", "rgb(253,187,132)", "rgb(252,141,89)", "rgb(227,74,51)", "rgb(179,0,0)"},
	{"rgb(254,240,217)", "rgb(253,212,158)", "rgb(253,187,132)", "rgb(252,141,89)", "rgb(239,101,72)", "rgb(215,48,31)", "rgb(153,0,0)"},
	{"rgb(255,247,236)", "rgb(254,232,200)", "rgb(253,212,158)", "rgb(253,187,132)", "rgb(252,141,89)", "rgb(239,101,72)", "rgb(215,48,31)", "rgb(153,0,0)"},
	{"rgb(255,247,236)", "rgb(254,232,200)", "rgb(253,212,158)", "rgb(253,187,132)", "rgb(252,141,89)", "rgb(239,101,72)", "rgb(215,48,31)", "rgb(179,0,0)", "rgb(127,0,0)"},
}

// Measure names color-coded by Colors.
const (
	measureIncome  = "income"
	measureExpense = "expense"
	measureBudget  = "period_budget"
	measureNet     = "net"
)

// Colors returns n color strings for the given measure. Income and expense
// use reversed sequential scales (darkest first) with 3 to 9 distinct
// colors; beyond 9 the scale repeats. n <= 0 yields an empty slice.
func Colors(measure string, n int) ([]string, error) {
	const low, high = 3, 9

	k := n
	if k < low {
		k = low
	}
	if k > high {
		k = high
	}

	var colors []string
	switch measure {
	case measureIncome:
		colors = reversed(gnbu[k-low])
	case measureExpense:
		colors = reversed(orrd[k-low])
	case measureBudget:
		colors = repeat("rgb(255,255,255)", k)
	case measureNet:
		colors = repeat("rgb(117,107,177)", k)
	default:
		return nil, fmt.Errorf("unknown measure %q", measure)
	}

	switch {
	case n <= 0:
		return []string{}, nil
	case n < low:
		return colors[:n], nil
	case n > high:
		q, r := n/k, n%k
		out := make([]string, 0, n)
		for i := 0; i < q; i++ {
			out = append(out, colors...)
		}
		return append(out, colors[:r]...), nil
	}
	return colors, nil
}

func reversed(colors []string) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[len(colors)-1-i] = c
	}
	return out
}

func repeat(color string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = color
	}
	return out
}
