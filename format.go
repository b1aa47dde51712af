package stocksim

// FormatCurrency formats m with 2 decimals, thousands separators and the dollar sign: "$1,234.56".
func FormatCurrency(m Money) string { return m.String() }

// FormatPercent formats a percentage with 2 decimals and an explicit sign: "+1.82%", "-0.56%", "0.00%".
func FormatPercent(p Percent) string { return p.SignedString() }
