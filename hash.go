package shred

// Value hashing uses FNV-1a with the variant tag mixed in first, so no
// two variants collide by payload alone. Floating point, decimal, map and
// group variants hash only the tag: they have no content hash consistent
// with their equality, and degrade to linear probing when used as map
// keys.

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Hash returns the digest of the value.
func (v Value) Hash() uint64 {
	h := uint64(fnvOffset64)
	v.hash(&h)
	return h
}

func (v Value) hash(h *uint64) {
	hashByte(h, byte(v.Kind()))
	switch v.Kind() {
	case KindBool, KindU8, KindI8, KindU16, KindI16, KindU32, KindI32,
		KindU64, KindI64, KindDate, KindTime:
		hashUint64(h, v.u64)
	case KindTimestamp:
		raw := v.ts.Int96()
		hashUint64(h, uint64(raw[0]))
		hashUint64(h, uint64(raw[1]))
		hashUint64(h, uint64(raw[2]))
	case KindByteArray, KindBson:
		hashBytes(h, v.bytes)
	case KindString, KindJson, KindEnum:
		hashString(h, v.str)
	case KindList:
		for _, e := range v.list {
			e.hash(h)
		}
		hashUint64(h, uint64(len(v.list)))
	case KindOption:
		if v.opt == nil {
			hashByte(h, 0)
		} else {
			hashByte(h, 1)
			v.opt.hash(h)
		}
	}
}

func hashByte(h *uint64, b byte) {
	*h = (*h ^ uint64(b)) * fnvPrime64
}

func hashUint64(h *uint64, u uint64) {
	for i := 0; i < 8; i++ {
		hashByte(h, byte(u>>(8*i)))
	}
}

func hashBytes(h *uint64, b []byte) {
	for _, c := range b {
		hashByte(h, c)
	}
	hashUint64(h, uint64(len(b)))
}

func hashString(h *uint64, s string) {
	for i := 0; i < len(s); i++ {
		hashByte(h, s[i])
	}
	hashUint64(h, uint64(len(s)))
}
