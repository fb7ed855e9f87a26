package editor

// Bridge translates toolbar actions into surface commands and reads back
// command state for toolbar highlighting.
type Bridge struct {
	surface Surface
	sync    *Synchronizer
	tracker *BlockTracker
}

func NewBridge(surface Surface, sync *Synchronizer, tracker *BlockTracker) *Bridge {
	return &Bridge{surface: surface, sync: sync, tracker: tracker}
}

// Apply executes a formatting command, restores focus to the surface, and
// synchronously resyncs the canonical HTML and the block classification.
func (b *Bridge) Apply(cmd Command, value string) {
	b.surface.Execute(cmd, value)
	b.surface.Focus()
	b.sync.ResyncFromSurface()
	b.tracker.Resync(b.surface.CaretAncestry())
}

// IsActive reports whether cmd applies at the caret/selection. Read-only;
// used for toolbar highlighting only.
func (b *Bridge) IsActive(cmd Command) bool {
	return b.surface.QueryActive(cmd)
}
