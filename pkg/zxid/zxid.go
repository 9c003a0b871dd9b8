package zxid

// ZXID identifies one applied transaction. It is a 64-bit number with two
// parts: the high order 32 bits hold the epoch and the low order 32 bits
// hold a counter within that epoch. In a real ensemble the epoch changes
// with leadership; the emulator runs a single fixed epoch and simply
// increments the counter for each mutation, which still yields strictly
// increasing, unique ids.
type ZXID int64

// New combines an epoch and a counter into a ZXID.
func New(epoch, counter int32) ZXID {
	return ZXID(int64(epoch)<<32 | int64(uint32(counter)))
}

// Epoch returns the high 32 bits of the zxid.
func (z ZXID) Epoch() int32 {
	return int32(z >> 32)
}

// Counter returns the low 32 bits of the zxid.
func (z ZXID) Counter() int32 {
	return int32(z & 0xFFFFFFFF)
}

// Generator hands out strictly increasing ZXIDs within a fixed epoch. It is
// not safe for concurrent use on its own; callers serialize through their
// own lock.
type Generator struct {
	epoch   int32
	counter int32
}

// NewGenerator returns a generator for the given epoch. The first ZXID it
// hands out has counter 1.
func NewGenerator(epoch int32) *Generator {
	return &Generator{epoch: epoch}
}

// Next returns the next ZXID.
func (g *Generator) Next() ZXID {
	g.counter++
	return New(g.epoch, g.counter)
}
