package kernel

// IterateScalar runs the escape-time recurrence for a single coordinate,
// with x² and y² carried between iterations exactly as the batched kernel
// does, so both produce bit-identical counts and magnitudes.
func IterateScalar(cr, ci float64, maxIter int) (iter int32, magSq float64) {
	var x, y, x2, y2 float64
	for x2+y2 < escapeRadiusSq && int(iter) < maxIter {
		xy := x * y
		x = x2 - y2 + cr
		y = 2*xy + ci
		x2 = x * x
		y2 = y * y
		iter++
	}
	return iter, x2 + y2
}

// ScalarValue is the scalar counterpart of Result.Value: the escape value of
// one coordinate in [0, maxIter], smoothed when smooth is set.
func ScalarValue(cr, ci float64, maxIter int, smooth bool) float64 {
	iter, magSq := IterateScalar(cr, ci, maxIter)
	if int(iter) >= maxIter || magSq < escapeRadiusSq {
		return float64(maxIter)
	}
	if !smooth {
		return float64(iter)
	}
	return smoothValue(iter, magSq, maxIter)
}
