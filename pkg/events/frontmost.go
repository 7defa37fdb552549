package events

// windowOwner is one entry of the on-screen window list.
type windowOwner struct {
	Layer int32
	PID   int32
}

// frontWindowOwner returns the process owning the first normal window of a
// front-to-back window list. Menu bar, dock and overlay windows live on
// non-zero layers and are skipped.
func frontWindowOwner(windows []windowOwner) (int32, bool) {
	for _, w := range windows {
		if w.Layer == 0 && w.PID > 0 {
			return w.PID, true
		}
	}
	return 0, false
}
