package strategies

// RSITriple holds the RSI of the previous-previous, previous and current bar.
type RSITriple struct {
	PP  float64
	P   float64
	Cur float64
}

// Thresholds are the per-bar limits the RSI triple is compared against.
type Thresholds struct {
	Cur float64
	P   float64
	PP  float64
}

// EvaluateRSIEntry is the long entry: all three bars below their threshold,
// RSI falling from pp to p and rising again from p to cur. Any NaN makes it false.
func EvaluateRSIEntry(rsi RSITriple, th Thresholds) bool {
	falling := rsi.PP > rsi.P
	rising := rsi.Cur > rsi.P

	isBelowCur := rsi.Cur < th.Cur
	isBelowP := rsi.P < th.P
	isBelowPP := rsi.PP < th.PP

	return isBelowCur && isBelowP && isBelowPP && falling && rising
}

// EvaluateRSIShortEntry mirrors EvaluateRSIEntry: all three bars above their
// threshold, RSI rising from pp to p and falling again from p to cur.
func EvaluateRSIShortEntry(rsi RSITriple, th Thresholds) bool {
	rising := rsi.PP < rsi.P
	falling := rsi.Cur < rsi.P

	isAboveCur := rsi.Cur > th.Cur
	isAboveP := rsi.P > th.P
	isAbovePP := rsi.PP > th.PP

	return isAboveCur && isAboveP && isAbovePP && rising && falling
}
