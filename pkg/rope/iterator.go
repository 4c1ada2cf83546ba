package rope

// Iterator is a cursor bound to a Rope by reference. It maintains an
// explicit ancestor stack rather than parent pointers — structurally
// grounded on the pop-until-unvisited-right-sibling walk used by cursor
// implementations over immutable trees without parent links — because
// branches in this tree are restructured on every insert/delete and
// keeping parent links consistent under rotation would be error-prone.
//
// Iterators observe the rope by reference; mutating or freeing the
// underlying rope invalidates every iterator over it. Using an iterator
// after that point is the caller's contract violation, not a checked
// error.
type Iterator struct {
	root *node

	stack []frame // ancestor stack, bounded at DefaultMaxDepth
	leaf  *node   // current leaf, nil only for an empty rope or after Destroy
	off   int      // byte offset within leaf

	bytePos, charPos int
}

// frame records a branch on the path to the current leaf and whether its
// right subtree has already been visited.
type frame struct {
	n         *node
	fromRight bool
}

// NewIterator creates an iterator over r positioned at character offset
// 0. It takes no starting position; SeekChar and SeekByte reposition it.
func NewIterator(r *Rope) *Iterator {
	it := &Iterator{root: r.root}
	it.seekChar(r, 0)
	return it
}

func (it *Iterator) seekChar(r *Rope, charPos int) {
	it.root = r.root
	it.stack = it.stack[:0]
	charPos = clamp(charPos, 0, r.CharLen())
	bytePos := charOffsetToByteOffset(r.root, charPos)
	it.descendToByte(bytePos)
	it.bytePos = bytePos
	it.charPos = charPos
}

func (it *Iterator) seekByte(r *Rope, bytePos int) {
	it.root = r.root
	it.stack = it.stack[:0]
	bytePos = clamp(bytePos, 0, r.ByteLen())
	it.descendToByte(bytePos)
	it.bytePos = bytePos
	it.charPos = byteOffsetToCharOffset(r.root, bytePos)
}

// descendToByte lands the cursor in the leaf containing bytePos, pushing
// onto the ancestor stack every branch on the path together with the side
// (left or right) the descent took from it.
func (it *Iterator) descendToByte(bytePos int) {
	n := it.root
	for n != nil && !n.isLeaf {
		if len(it.stack) >= DefaultMaxDepth {
			break
		}
		w := n.leftBytes
		if bytePos < w {
			it.stack = append(it.stack, frame{n: n, fromRight: false})
			n = n.left
		} else {
			it.stack = append(it.stack, frame{n: n, fromRight: true})
			bytePos -= w
			n = n.right
		}
	}
	it.leaf = n
	if n != nil {
		it.off = clamp(bytePos, 0, n.byteLen)
	} else {
		it.off = 0
	}
}

// SeekChar re-initializes the iterator at character offset p.
func (it *Iterator) SeekChar(r *Rope, p int) { it.seekChar(r, p) }

// SeekByte re-initializes the iterator at byte offset b.
func (it *Iterator) SeekByte(r *Rope, b int) { it.seekByte(r, b) }

// Next decodes the character at the cursor and advances past it. It
// returns false once the cursor has passed the last character.
func (it *Iterator) Next() (rune, bool) {
	if it.leaf == nil || it.off >= it.leaf.byteLen {
		if !it.advanceToNextLeaf() {
			return 0, false
		}
	}
	if it.leaf == nil {
		return 0, false
	}
	r, consumed := decodeRune(it.leaf.bytes[it.off:])
	if consumed == 0 {
		return 0, false
	}
	it.off += consumed
	it.bytePos += consumed
	it.charPos++
	return r, true
}

// advanceToNextLeaf pops ancestors until one has an unvisited right
// subtree, then descends leftmost from there to find the next leaf.
func (it *Iterator) advanceToNextLeaf() bool {
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		if top.fromRight {
			continue
		}
		it.stack = append(it.stack, frame{n: top.n, fromRight: true})
		n := top.n.right
		for n != nil && !n.isLeaf {
			it.stack = append(it.stack, frame{n: n, fromRight: false})
			n = n.left
		}
		it.leaf = n
		it.off = 0
		return n != nil
	}
	it.descendToByte(it.bytePos) // stay at the end so Prev can step back
	return false
}

// Prev decodes the character immediately before the cursor and moves the
// cursor to its start. It returns false once the cursor has passed the
// first character.
func (it *Iterator) Prev() (rune, bool) {
	if it.leaf == nil || it.off == 0 {
		if !it.retreatToPrevLeaf() {
			return 0, false
		}
	}
	start := it.prevCharStart()
	r, _ := decodeRune(it.leaf.bytes[start:it.off])
	it.bytePos -= it.off - start
	it.off = start
	it.charPos--
	return r, true
}

// retreatToPrevLeaf pops ancestors until one has an unvisited left
// subtree relative to the current walk, then descends rightmost.
func (it *Iterator) retreatToPrevLeaf() bool {
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		if !top.fromRight {
			continue
		}
		it.stack = append(it.stack, frame{n: top.n, fromRight: false})
		n := top.n.left
		for n != nil && !n.isLeaf {
			it.stack = append(it.stack, frame{n: n, fromRight: true})
			n = n.right
		}
		it.leaf = n
		if n != nil {
			it.off = n.byteLen
		}
		return n != nil
	}
	it.descendToByte(it.bytePos) // stay at the start so Next can step forward
	return false
}

// prevCharStart scans the current leaf from its start to locate the lead
// byte of the character immediately before the cursor's offset. No
// backward-scanning-by-lead-byte-recognition is needed; a forward scan
// from the leaf start is simpler and the spec explicitly allows it.
func (it *Iterator) prevCharStart() int {
	data := it.leaf.bytes
	prev := 0
	for i := 0; i < it.off; {
		_, consumed := decodeRune(data[i:])
		if consumed == 0 || i+consumed > it.off {
			break
		}
		prev = i
		i += consumed
	}
	return prev
}

// Destroy releases the ancestor stack storage.
func (it *Iterator) Destroy() {
	it.stack = nil
	it.leaf = nil
	it.root = nil
}
