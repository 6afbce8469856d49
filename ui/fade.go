package ui

// Fade masks: 2x2 tile patterns, one per darkening level. A set bit
// clears the pixel.
var fadeMasks = [5][2][2]uint8{
	{{0, 0}, {0, 0}},
	{{1, 0}, {0, 0}},
	{{1, 0}, {0, 1}},
	{{1, 1}, {0, 1}},
	{{1, 1}, {1, 1}},
}

// ApplyMask darkens the frame with the pattern for the given level,
// clamped to [1, 5].
func (f *Frame) ApplyMask(level int) {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	m := &fadeMasks[level-1]
	for y := int16(0); y < f.h; y++ {
		for x := int16(0); x < f.w; x++ {
			if m[y&1][x&1] != 0 {
				f.Set(x, y, false)
			}
		}
	}
}
