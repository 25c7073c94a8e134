package partition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionString(t *testing.T) {
	assert.Equal(t, "{}", Partition{}.String())
	assert.Equal(t, "{{1}}", Partition{{1}}.String())
	assert.Equal(t, "{{1,3},{2}}", Partition{{1, 3}, {2}}.String())
	assert.Equal(t, "[[1,3],[2]]", string(Partition{{1, 3}, {2}}.AppendJSON(nil)))
	assert.Equal(t, "x[]", string(Partition{}.AppendJSON([]byte("x"))))
}

func TestPartitionValidate(t *testing.T) {
	type testcase struct {
		name    string
		p       Partition
		n       int
		wantErr string
	}
	tcs := []testcase{
		{name: "empty set", p: Partition{}, n: 0},
		{name: "valid", p: Partition{{1, 3}, {2}}, n: 3},
		{name: "valid non canonical", p: Partition{{2}, {1, 3}}, n: 3},
		{name: "empty block", p: Partition{{1, 2}, {}}, n: 2, wantErr: "block 1 is empty"},
		{name: "out of range", p: Partition{{1, 4}}, n: 3, wantErr: "element 4 outside 1..3"},
		{name: "zero", p: Partition{{0, 1}}, n: 1, wantErr: "element 0 outside 1..1"},
		{name: "not ascending", p: Partition{{2, 1}}, n: 2, wantErr: "block 0 is not strictly ascending"},
		{name: "duplicate", p: Partition{{1, 2}, {2}}, n: 2, wantErr: "element 2 appears twice"},
		{name: "missing", p: Partition{{1}, {3}}, n: 3, wantErr: "covers 2 of 3 elements"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate(tc.n)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var invalid *InvalidPartitionError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tc.wantErr, invalid.Reason)
			assert.Equal(t, tc.p.String(), invalid.Partition)
		})
	}
}

func TestPartitionCompare(t *testing.T) {
	assert.Equal(t, 0, Compare(Partition{{1}, {2}}, Partition{{1}, {2}}))
	assert.Equal(t, -1, Compare(Partition{{1}, {2}}, Partition{{1}, {2, 3}}))
	assert.Equal(t, -1, Compare(Partition{{1}, {2, 3, 4}}, Partition{{1}, {2, 4}, {3}}))
	assert.Equal(t, 1, Compare(Partition{{1, 3}, {2}}, Partition{{1, 2, 3}}))
	assert.Equal(t, -1, Compare(Partition{}, Partition{{1}}))
	assert.Equal(t, 1, Compare(Partition{{1}, {2}}, Partition{{1}}))
	assert.True(t, Equal(Partition{{1, 2}}, Partition{{1, 2}}))
}

func TestPartitionCanonical(t *testing.T) {
	p := Partition{{1, 3}, {2}}
	assert.True(t, p.IsCanonical())
	assert.Equal(t, p, p.Canonical())

	q := Partition{{2, 5}, {1, 4}, {3}}
	assert.False(t, q.IsCanonical())
	assert.Equal(t, Partition{{1, 4}, {2, 5}, {3}}, q.Canonical())
	// The receiver is left untouched.
	assert.Equal(t, Partition{{2, 5}, {1, 4}, {3}}, q)
}

func TestPartitionCloneAndCopyTo(t *testing.T) {
	p := Partition{{1, 2}, {3}}
	c := p.Clone()
	c[0][0] = 9
	assert.Equal(t, 1, p[0][0])

	var dst Partition
	dst = Partition{{1, 2, 3}}.CopyTo(dst)
	assert.Equal(t, Partition{{1, 2, 3}}, dst)
	inner := &dst[0][0]
	dst = Partition{{1}, {2, 3}}.CopyTo(dst)
	assert.Equal(t, Partition{{1}, {2, 3}}, dst)
	assert.Equal(t, 2, dst.Len())
	assert.Equal(t, 3, dst.Size())
	// The first block's storage was reused.
	assert.Same(t, inner, &dst[0][0])
}
