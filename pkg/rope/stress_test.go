package rope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestStress_LargeSequentialInsert mirrors the spec's stress scenario: a
// large number of concatenated inserts of a small chunk must preserve
// every invariant and complete without stack overflow.
func TestStress_LargeSequentialInsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	const chunk = "abcdefghijklmnopqrstu\n" // 22 bytes
	require.Equal(t, 22, len(chunk))
	const numInserts = 50000

	r := New()
	for i := 0; i < numInserts; i++ {
		r = r.InsertBytes(r.ByteLen(), []byte(chunk))
	}

	require.NoError(t, r.Validate())
	require.Equal(t, 22*numInserts, r.ByteLen())
	require.Equal(t, numInserts, r.NewlineCount())
	require.True(t, strings.HasPrefix(r.String(), chunk))
	require.True(t, strings.HasSuffix(r.String(), chunk))
}

// TestStress_ReverseInsert exercises the adversarial pattern called out in
// the spec: inserting always at the front keeps the left spine busy.
func TestStress_ReverseInsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	r := New()
	const n = 5000
	for i := 0; i < n; i++ {
		r = r.InsertBytes(0, []byte("x"))
	}
	require.NoError(t, r.Validate())
	require.Equal(t, n, r.ByteLen())
}

// TestStress_AlternatingInsertDelete exercises the other adversarial
// pattern: alternating insert and delete at the tail.
func TestStress_AlternatingInsertDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	r := New()
	const n = 5000
	for i := 0; i < n; i++ {
		r = r.InsertBytes(r.ByteLen(), []byte("ab"))
		r = r.DeleteBytes(r.ByteLen()-1, 1)
	}
	require.NoError(t, r.Validate())
	require.Equal(t, n, r.ByteLen())
}
