package photometry

// OtsuThreshold computes the binary threshold maximizing inter-class
// variance over a 256-level grayscale histogram. Ties keep the lowest
// maximizing threshold; a histogram that never splits into two classes
// falls back to the mid-level default of 128.
func OtsuThreshold(hist [256]int, total int) int {
	var sum float64
	for i := 0; i < 256; i++ {
		sum += float64(i) * float64(hist[i])
	}

	var sumB float64
	var wB, wF int
	var maxVar float64
	thresh := 128
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF = total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		variance := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if variance > maxVar {
			maxVar = variance
			thresh = t
		}
	}

	return thresh
}
