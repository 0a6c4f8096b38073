package wire

import (
	"github.com/shunpeizhang/weaver/clock"
	"github.com/shunpeizhang/weaver/graph"
)

// SizeVClock returns the wire size of a clock.VClock.
func SizeVClock() int { return sizeUint64() }

// PackVClock appends v to buf.
func PackVClock(buf []byte, v clock.VClock) []byte {
	return packUint64(buf, uint64(v))
}

// UnpackVClock reads a clock.VClock from the front of buf.
func UnpackVClock(buf []byte) (clock.VClock, []byte, error) {
	v, rest, err := unpackUint64(buf)
	return clock.VClock(v), rest, err
}

// SizeRemoteNode returns the wire size of a graph.RemoteNode: two
// fixed-width uint64 fields.
func SizeRemoteNode() int { return 2 * sizeUint64() }

// PackRemoteNode appends rn to buf.
func PackRemoteNode(buf []byte, rn graph.RemoteNode) []byte {
	buf = packUint64(buf, rn.ShardID)
	buf = packUint64(buf, rn.Handle)
	return buf
}

// UnpackRemoteNode reads a graph.RemoteNode from the front of buf.
func UnpackRemoteNode(buf []byte) (graph.RemoteNode, []byte, error) {
	shardID, buf, err := unpackUint64(buf)
	if err != nil {
		return graph.RemoteNode{}, nil, err
	}
	handle, buf, err := unpackUint64(buf)
	if err != nil {
		return graph.RemoteNode{}, nil, err
	}
	return graph.RemoteNode{ShardID: shardID, Handle: handle}, buf, nil
}

// SizeProperty returns the wire size of p.
func SizeProperty(p graph.Property) int {
	return sizeString(p.Key) + sizeString(p.Value) + SizeVClock() + SizeVClock()
}

// PackProperty appends p to buf. The private deletion flag is not
// carried on the wire; UnpackProperty reconstructs it from DelTime,
// since MarkDeleted always moves DelTime away from clock.EndOfTime.
func PackProperty(buf []byte, p graph.Property) []byte {
	buf = packString(buf, p.Key)
	buf = packString(buf, p.Value)
	buf = PackVClock(buf, p.CreatTime)
	buf = PackVClock(buf, p.DelTime)
	return buf
}

// UnpackProperty reads a graph.Property from the front of buf.
func UnpackProperty(buf []byte) (graph.Property, []byte, error) {
	key, buf, err := unpackString(buf)
	if err != nil {
		return graph.Property{}, nil, err
	}
	value, buf, err := unpackString(buf)
	if err != nil {
		return graph.Property{}, nil, err
	}
	creat, buf, err := UnpackVClock(buf)
	if err != nil {
		return graph.Property{}, nil, err
	}
	del, buf, err := UnpackVClock(buf)
	if err != nil {
		return graph.Property{}, nil, err
	}

	p := graph.NewProperty(key, value, creat)
	if del != clock.EndOfTime {
		p.MarkDeleted(del)
	}
	return p, buf, nil
}

// SizePropertySlice returns the wire size of a []graph.Property: a
// uint32 count prefix followed by each element.
func SizePropertySlice(props []graph.Property) int {
	n := sizeUint32()
	for _, p := range props {
		n += SizeProperty(p)
	}
	return n
}

func PackPropertySlice(buf []byte, props []graph.Property) []byte {
	buf = packUint32(buf, uint32(len(props)))
	for _, p := range props {
		buf = PackProperty(buf, p)
	}
	return buf
}

func UnpackPropertySlice(buf []byte) ([]graph.Property, []byte, error) {
	n, buf, err := unpackUint32(buf)
	if err != nil {
		return nil, nil, err
	}
	props := make([]graph.Property, 0, n)
	for i := uint32(0); i < n; i++ {
		var p graph.Property
		p, buf, err = UnpackProperty(buf)
		if err != nil {
			return nil, nil, err
		}
		props = append(props, p)
	}
	return props, buf, nil
}
