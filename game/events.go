package game

// Listener receives core signals as they happen. Any nil field is skipped.
type Listener struct {
	OnDanger   func(level float64)
	OnCatch    func()
	OnWin      func()
	OnFootstep func(volume float64)
}

func (l *Listener) danger(level float64) {
	if l != nil && l.OnDanger != nil {
		l.OnDanger(level)
	}
}

func (l *Listener) catch() {
	if l != nil && l.OnCatch != nil {
		l.OnCatch()
	}
}

func (l *Listener) win() {
	if l != nil && l.OnWin != nil {
		l.OnWin()
	}
}

func (l *Listener) footstep(volume float64) {
	if l != nil && l.OnFootstep != nil {
		l.OnFootstep(volume)
	}
}

// dispatchPlayer forwards player signals to l
func (l *Listener) dispatchPlayer(s PlayerSignals) {
	if s.Footstep != nil {
		l.footstep(s.Footstep.Volume)
	}
	if s.Won {
		l.win()
	}
}

// dispatchMonster forwards monster signals to l
func (l *Listener) dispatchMonster(s MonsterSignals) {
	if s.DangerSet {
		l.danger(s.Danger)
	}
	if s.Footstep != nil {
		l.footstep(s.Footstep.Volume)
	}
	if s.Caught {
		l.catch()
	}
}
