package rope

import "strings"

// RopeBuilder batches inserts into a rope under construction, merging
// consecutive appends before applying them so a long run of Append calls
// does not pay for one tree mutation per call.
//
// Example:
//
//	b := rope.NewBuilder()
//	b.Append("Hello").Append(" ").Append("World")
//	r := b.Build()
type RopeBuilder struct {
	rope    *Rope
	pending []pendingInsert
}

type pendingInsert struct {
	position int // character position; -1 means append to end
	text     string
}

// NewBuilder returns a builder starting from an empty rope.
func NewBuilder() *RopeBuilder {
	return &RopeBuilder{rope: New(), pending: make([]pendingInsert, 0, 16)}
}

// NewBuilderFromRope returns a builder that continues building on r. r is
// consumed: the builder becomes the sole owner of its handle.
func NewBuilderFromRope(r *Rope) *RopeBuilder {
	return &RopeBuilder{rope: r, pending: make([]pendingInsert, 0, 16)}
}

// Append queues text to be inserted at the end of the rope.
func (b *RopeBuilder) Append(text string) *RopeBuilder {
	if text == "" {
		return b
	}
	b.pending = append(b.pending, pendingInsert{position: -1, text: text})
	return b
}

// Insert queues text to be inserted at character position pos.
func (b *RopeBuilder) Insert(pos int, text string) *RopeBuilder {
	if text == "" {
		return b
	}
	b.pending = append(b.pending, pendingInsert{position: pos, text: text})
	return b
}

// Delete applies all pending inserts, then deletes [start, end) immediately.
func (b *RopeBuilder) Delete(start, end int) *RopeBuilder {
	b.flush()
	b.rope = b.rope.DeleteChars(start, end-start)
	return b
}

// Build flushes all pending operations and returns the built rope. Unlike
// the teacher's immutable builder, Build does not clone: it hands the
// builder's own handle to the caller and starts the builder over with a
// fresh empty rope, since this rope's mutations consume their receiver
// rather than sharing structure.
func (b *RopeBuilder) Build() *Rope {
	b.flush()
	result := b.rope
	b.rope = New()
	b.pending = b.pending[:0]
	return result
}

func (b *RopeBuilder) flush() {
	if len(b.pending) == 0 {
		return
	}

	merged := make([]pendingInsert, 0, len(b.pending))
	i := 0
	for i < len(b.pending) {
		if b.pending[i].position == -1 {
			var sb strings.Builder
			for i < len(b.pending) && b.pending[i].position == -1 {
				sb.WriteString(b.pending[i].text)
				i++
			}
			merged = append(merged, pendingInsert{position: -1, text: sb.String()})
			continue
		}
		merged = append(merged, b.pending[i])
		i++
	}

	for _, op := range merged {
		if op.position == -1 {
			b.rope = b.rope.InsertChars(b.rope.CharLen(), op.text)
		} else {
			b.rope = b.rope.InsertChars(op.position, op.text)
		}
	}
	b.pending = b.pending[:0]
}

// Length returns the rope's character length including pending operations.
func (b *RopeBuilder) Length() int {
	length := b.rope.CharLen()
	for _, op := range b.pending {
		length += countChars([]byte(op.text))
	}
	return length
}

// Reset discards pending operations and starts over with an empty rope.
func (b *RopeBuilder) Reset() *RopeBuilder {
	b.rope = New()
	b.pending = b.pending[:0]
	return b
}

// Write implements io.Writer for convenience.
func (b *RopeBuilder) Write(p []byte) (int, error) {
	b.Append(string(p))
	return len(p), nil
}

// WriteString implements io.StringWriter for convenience.
func (b *RopeBuilder) WriteString(s string) (int, error) {
	b.Append(s)
	return len(s), nil
}
