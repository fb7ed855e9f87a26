package editor

// BlockKind classifies the nearest block-level ancestor of the editing
// caret. Values match node names so ancestry walks can compare directly.
type BlockKind string

const (
	BlockParagraph     BlockKind = "P"
	BlockHeading1      BlockKind = "H1"
	BlockHeading2      BlockKind = "H2"
	BlockHeading3      BlockKind = "H3"
	BlockHeading4      BlockKind = "H4"
	BlockUnorderedList BlockKind = "UL"
	BlockOrderedList   BlockKind = "OL"
)

// BlockKindFromNode maps a node name to a recognized block kind.
func BlockKindFromNode(name string) (BlockKind, bool) {
	switch BlockKind(name) {
	case BlockParagraph, BlockHeading1, BlockHeading2, BlockHeading3, BlockHeading4,
		BlockUnorderedList, BlockOrderedList:
		return BlockKind(name), true
	}
	return "", false
}

// BlockTracker tracks the caret's block classification. It must be resynced
// after every formatting command and every keystroke in the visual surface,
// because selection state changes continuously.
type BlockTracker struct {
	active BlockKind
}

func NewBlockTracker() *BlockTracker {
	return &BlockTracker{active: BlockParagraph}
}

func (t *BlockTracker) Active() BlockKind { return t.active }

// Resync walks the ancestor chain (nearest first) and adopts the first
// recognized block kind, defaulting to Paragraph when none is found.
func (t *BlockTracker) Resync(ancestry []string) {
	for _, name := range ancestry {
		if k, ok := BlockKindFromNode(name); ok {
			t.active = k
			return
		}
	}
	t.active = BlockParagraph
}

// Toggle resolves a "set block to kind" action: re-applying the active kind
// reverts to Paragraph. This is the only way headings are removed.
func (t *BlockTracker) Toggle(kind BlockKind) BlockKind {
	if t.active == kind {
		return BlockParagraph
	}
	return kind
}
