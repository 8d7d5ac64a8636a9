package debug

// FloorGrid returns line vertices for a square grid on the y=0 plane,
// centered on the origin, spanning [-halfSize, halfSize] with lines every step.
func FloorGrid(halfSize, step float32) []float32 {
	if step <= 0 || halfSize <= 0 {
		return nil
	}
	n := int(halfSize / step)
	out := make([]float32, 0, (2*n+1)*12)
	for i := -n; i <= n; i++ {
		p := float32(i) * step
		out = append(out,
			p, 0, -halfSize, p, 0, halfSize,
			-halfSize, 0, p, halfSize, 0, p,
		)
	}
	return out
}
