package knob

// ListenerCount reports how many change listeners k holds.
func ListenerCount(k *Knob) int { return len(k.listeners) }
