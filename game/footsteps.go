package game

// stepTimer accumulates moving time and fires once per interval
type stepTimer struct {
	acc float64
}

// advance adds dt and reports whether a step is due. A fired timer restarts
// from zero; the remainder is dropped.
func (s *stepTimer) advance(dt, interval float64) bool {
	s.acc += dt
	if s.acc > interval {
		s.acc = 0
		return true
	}
	return false
}

func (s *stepTimer) reset() {
	s.acc = 0
}
