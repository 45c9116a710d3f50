package parameterservice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGet(t *testing.T) {
	s := NewStore()
	s.SetOffset("task", "bsd_info", 0x368)
	s.SetSize("ipc_port", 0xa8)
	s.SetBlockSize("ipc_port", 0x4000)
	s.SetCountPerBlock("ipc_port", 97)
	s.SetAddress("kernel_base", 0xFFFFFFF007004000)
	s.SetConstant("gc_step", 2*mb)

	assert.Equal(t, uint64(0x368), s.Offset("task", "bsd_info"))
	assert.Equal(t, uint64(0xa8), s.Size("ipc_port"))
	assert.Equal(t, uint64(0x4000), s.BlockSize("ipc_port"))
	assert.Equal(t, uint64(97), s.CountPerBlock("ipc_port"))
	assert.Equal(t, uint64(0xFFFFFFF007004000), s.Address("kernel_base"))
	assert.Equal(t, uint64(2*mb), s.Constant("gc_step"))
	assert.Equal(t, 6, s.Len())
}

func TestStore_LastWriteWins(t *testing.T) {
	s := NewStore()
	s.SetOffset("task", "bsd_info", 0x368)
	s.SetOffset("task", "bsd_info", 0x358)
	assert.Equal(t, uint64(0x358), s.Offset("task", "bsd_info"))
}

func TestStore_NamespacesAreDistinct(t *testing.T) {
	s := NewStore()
	s.SetSize("ipc_port", 1)
	s.SetBlockSize("ipc_port", 2)
	s.SetAddress("x", 3)
	s.SetConstant("x", 4)

	assert.Equal(t, uint64(1), s.Size("ipc_port"))
	assert.Equal(t, uint64(2), s.BlockSize("ipc_port"))
	assert.Equal(t, uint64(3), s.Address("x"))
	assert.Equal(t, uint64(4), s.Constant("x"))
}

func TestStore_GetMissingPanics(t *testing.T) {
	s := NewStore()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		merr, ok := r.(*MissingParameterError)
		require.True(t, ok, "panic value %T", r)
		assert.Equal(t, OffsetKey("task", "bsd_info"), merr.Key)
		assert.Contains(t, merr.Error(), "offsets.task.bsd_info")
	}()

	s.Offset("task", "bsd_info")
}

func TestStore_Lookup(t *testing.T) {
	s := NewStore()
	_, ok := s.Lookup(SizeKey("ipc_port"))
	assert.False(t, ok)

	s.SetSize("ipc_port", 0xa8)
	v, ok := s.Lookup(SizeKey("ipc_port"))
	assert.True(t, ok)
	assert.Equal(t, uint64(0xa8), v)
}

func TestStore_FreezeRejectsWrites(t *testing.T) {
	s := NewStore()
	s.SetConstant("kmsg_zone_size", 256)
	s.Freeze()
	assert.True(t, s.Frozen())

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrStoreFrozen))
		assert.Equal(t, uint64(256), s.Constant("kmsg_zone_size"))
	}()

	s.SetConstant("kmsg_zone_size", 1)
}

func TestKey_Path(t *testing.T) {
	assert.Equal(t, "offsets.task.bsd_info", OffsetKey("task", "bsd_info").Path())
	assert.Equal(t, "sizes.ipc_port", SizeKey("ipc_port").Path())
	assert.Equal(t, "block_sizes.ipc_voucher", BlockSizeKey("ipc_voucher").Path())
	assert.Equal(t, "count_per_block.ipc_port", CountPerBlockKey("ipc_port").String())
	assert.Equal(t, "addresses.kernel_base", AddressKey("kernel_base").Path())
	assert.Equal(t, "constants.gc_step", ConstantKey("gc_step").Path())
}

func TestStore_EntriesOrder(t *testing.T) {
	s := NewStore()
	s.SetConstant("gc_step", 1)
	s.SetOffset("task", "map", 2)
	s.SetSize("ipc_port", 3)
	s.SetOffset("proc", "p_pid", 4)

	var paths []string
	for _, e := range s.Entries() {
		paths = append(paths, e.Key.Path())
	}
	assert.Equal(t, []string{
		"offsets.proc.p_pid",
		"offsets.task.map",
		"sizes.ipc_port",
		"constants.gc_step",
	}, paths)
}
