package sheet

// Lock is the page-level scroll lock the sheet holds while it is being
// dragged. Hosts supply an implementation that freezes the underlying
// page's scrolling; the machine guarantees every Acquire is paired with a
// Release on every exit path (settle, dismiss, cancel, close mid-grace).
type Lock interface {
	Acquire()
	Release()
}

// NopLock is a Lock that does nothing, for hosts without a scrollable page
// behind the sheet.
type NopLock struct{}

func (NopLock) Acquire() {}
func (NopLock) Release() {}
