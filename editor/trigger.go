package editor

// Trigger is a one-shot registration on the next text insertion. It is
// either idle or armed with a single handler; arming again replaces the
// handler, and an insertion consumes it.
type Trigger struct {
	handler InsertHandler
	serial  int
}

// On arms the trigger with handler. The returned cancel disarms it, unless
// the trigger was re-armed or consumed in the meantime.
func (t *Trigger) On(handler InsertHandler) (cancel func()) {
	t.serial++
	t.handler = handler
	serial := t.serial
	return func() {
		if t.serial == serial {
			t.Off()
		}
	}
}

// Off disarms the trigger.
func (t *Trigger) Off() {
	t.serial++
	t.handler = nil
}

// Active reports whether the trigger is armed.
func (t *Trigger) Active() bool {
	return t.handler != nil
}

func (t *Trigger) consume() InsertHandler {
	handler := t.handler
	if handler != nil {
		t.Off()
	}
	return handler
}
