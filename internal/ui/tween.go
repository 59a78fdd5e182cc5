package ui

// Tween animates *Target from Start to End over Duration seconds,
// advancing CurrentTime every frame and writing the eased value back
// through the pointer. OnComplete fires once, then the tween is removed
// from its owning list.
type Tween struct {
	Target      *float32
	Start, End  float32
	CurrentTime float32
	Duration    float32
	Easing      EasingFunc
	OnComplete  func()

	done bool
}

// Progress returns the current clamped [0,1] time ratio.
func (tw *Tween) Progress() float32 {
	if tw.Duration <= 0 {
		return 1
	}
	return clamp01(tw.CurrentTime / tw.Duration)
}

// advance moves the tween forward by dt, writes the eased value, and
// reports whether it just completed this step.
func (tw *Tween) advance(dt float32) bool {
	if tw.done {
		return false
	}
	tw.CurrentTime += dt
	t := tw.Progress()
	eased := t
	if tw.Easing != nil {
		eased = tw.Easing(t)
	}
	*tw.Target = tw.Start + (tw.End-tw.Start)*eased

	if t >= 1 {
		tw.done = true
		return true
	}
	return false
}

// TweenList is the list of active tweens one element owns. Re-targeting
// the same pointer replaces any previous tween on it rather than
// running both concurrently.
type TweenList struct {
	active []*Tween
}

// Start adds tw to the list, removing any existing tween already
// targeting the same pointer.
func (l *TweenList) Start(tw *Tween) {
	for i, existing := range l.active {
		if existing.Target == tw.Target {
			l.active[i] = tw
			return
		}
	}
	l.active = append(l.active, tw)
}

// Stop removes any tween targeting ptr without applying a final value.
func (l *TweenList) Stop(ptr *float32) {
	for i, tw := range l.active {
		if tw.Target == ptr {
			l.active = append(l.active[:i], l.active[i+1:]...)
			return
		}
	}
}

// Advance steps every active tween by dt, firing OnComplete and
// pruning finished tweens.
func (l *TweenList) Advance(dt float32) {
	if len(l.active) == 0 {
		return
	}
	remaining := l.active[:0]
	for _, tw := range l.active {
		completed := tw.advance(dt)
		if completed {
			if tw.OnComplete != nil {
				tw.OnComplete()
			}
			continue
		}
		remaining = append(remaining, tw)
	}
	l.active = remaining
}

// Animate is a convenience constructor that builds and starts a tween
// targeting ptr in one call.
func Animate(l *TweenList, ptr *float32, start, end, duration float32, easing EasingFunc, onComplete func()) {
	l.Start(&Tween{
		Target:     ptr,
		Start:      start,
		End:        end,
		Duration:   duration,
		Easing:     easing,
		OnComplete: onComplete,
	})
}
