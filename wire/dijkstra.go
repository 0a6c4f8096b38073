package wire

import (
	"github.com/shunpeizhang/weaver/nodeprog/dijkstra"
)

// SizeEntry returns the wire size of a dijkstra.Entry.
func SizeEntry() int { return sizeUint64() + SizeRemoteNode() }

func PackEntry(buf []byte, e dijkstra.Entry) []byte {
	buf = packUint64(buf, e.Cost)
	buf = PackRemoteNode(buf, e.Node)
	return buf
}

func UnpackEntry(buf []byte) (dijkstra.Entry, []byte, error) {
	cost, buf, err := unpackUint64(buf)
	if err != nil {
		return dijkstra.Entry{}, nil, err
	}
	node, buf, err := UnpackRemoteNode(buf)
	if err != nil {
		return dijkstra.Entry{}, nil, err
	}
	return dijkstra.Entry{Cost: cost, Node: node}, buf, nil
}

func sizeEntrySlice(entries []dijkstra.Entry) int {
	return sizeUint32() + len(entries)*SizeEntry()
}

func packEntrySlice(buf []byte, entries []dijkstra.Entry) []byte {
	buf = packUint32(buf, uint32(len(entries)))
	for _, e := range entries {
		buf = PackEntry(buf, e)
	}
	return buf
}

func unpackEntrySlice(buf []byte) ([]dijkstra.Entry, []byte, error) {
	n, buf, err := unpackUint32(buf)
	if err != nil {
		return nil, nil, err
	}
	out := make([]dijkstra.Entry, 0, n)
	for i := uint32(0); i < n; i++ {
		var e dijkstra.Entry
		e, buf, err = UnpackEntry(buf)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, e)
	}
	return out, buf, nil
}

// SizePathStep returns the wire size of a dijkstra.PathStep.
func SizePathStep() int { return 2 * sizeUint64() }

func PackPathStep(buf []byte, s dijkstra.PathStep) []byte {
	buf = packUint64(buf, s.Handle)
	buf = packUint64(buf, s.Cost)
	return buf
}

func UnpackPathStep(buf []byte) (dijkstra.PathStep, []byte, error) {
	handle, buf, err := unpackUint64(buf)
	if err != nil {
		return dijkstra.PathStep{}, nil, err
	}
	cost, buf, err := unpackUint64(buf)
	if err != nil {
		return dijkstra.PathStep{}, nil, err
	}
	return dijkstra.PathStep{Handle: handle, Cost: cost}, buf, nil
}

func sizePathStepSlice(steps []dijkstra.PathStep) int {
	return sizeUint32() + len(steps)*SizePathStep()
}

func packPathStepSlice(buf []byte, steps []dijkstra.PathStep) []byte {
	buf = packUint32(buf, uint32(len(steps)))
	for _, s := range steps {
		buf = PackPathStep(buf, s)
	}
	return buf
}

func unpackPathStepSlice(buf []byte) ([]dijkstra.PathStep, []byte, error) {
	n, buf, err := unpackUint32(buf)
	if err != nil {
		return nil, nil, err
	}
	out := make([]dijkstra.PathStep, 0, n)
	for i := uint32(0); i < n; i++ {
		var s dijkstra.PathStep
		s, buf, err = UnpackPathStep(buf)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, s)
	}
	return out, buf, nil
}

// SizeParams returns the wire size of p.
func SizeParams(p dijkstra.Params) int {
	return sizeUint64() + // SrcHandle
		SizeRemoteNode() + // SourceNode
		sizeUint64() + // DstHandle
		sizeUint32() + // EdgeWeightKey
		SizePropertySlice(p.EdgeProps) +
		sizeBool() + // IsWidestPath
		sizeBool() + // AddingNodes
		sizeUint64() + // PrevNode
		sizeUint64() + // NextNode
		sizeEntrySlice(p.EntriesToAdd) +
		sizePathStepSlice(p.FinalPath) +
		sizeUint64() // Cost
}

// PackParams appends p to buf in declared field order.
func PackParams(buf []byte, p dijkstra.Params) []byte {
	buf = packUint64(buf, p.SrcHandle)
	buf = PackRemoteNode(buf, p.SourceNode)
	buf = packUint64(buf, p.DstHandle)
	buf = packUint32(buf, p.EdgeWeightKey)
	buf = PackPropertySlice(buf, p.EdgeProps)
	buf = packBool(buf, p.IsWidestPath)
	buf = packBool(buf, p.AddingNodes)
	buf = packUint64(buf, p.PrevNode)
	buf = packUint64(buf, p.NextNode)
	buf = packEntrySlice(buf, p.EntriesToAdd)
	buf = packPathStepSlice(buf, p.FinalPath)
	buf = packUint64(buf, p.Cost)
	return buf
}

// UnpackParams reads a dijkstra.Params from the front of buf.
func UnpackParams(buf []byte) (dijkstra.Params, []byte, error) {
	var p dijkstra.Params
	var err error

	p.SrcHandle, buf, err = unpackUint64(buf)
	if err != nil {
		return dijkstra.Params{}, nil, err
	}
	p.SourceNode, buf, err = UnpackRemoteNode(buf)
	if err != nil {
		return dijkstra.Params{}, nil, err
	}
	p.DstHandle, buf, err = unpackUint64(buf)
	if err != nil {
		return dijkstra.Params{}, nil, err
	}
	p.EdgeWeightKey, buf, err = unpackUint32(buf)
	if err != nil {
		return dijkstra.Params{}, nil, err
	}
	p.EdgeProps, buf, err = UnpackPropertySlice(buf)
	if err != nil {
		return dijkstra.Params{}, nil, err
	}
	p.IsWidestPath, buf, err = unpackBool(buf)
	if err != nil {
		return dijkstra.Params{}, nil, err
	}
	p.AddingNodes, buf, err = unpackBool(buf)
	if err != nil {
		return dijkstra.Params{}, nil, err
	}
	p.PrevNode, buf, err = unpackUint64(buf)
	if err != nil {
		return dijkstra.Params{}, nil, err
	}
	p.NextNode, buf, err = unpackUint64(buf)
	if err != nil {
		return dijkstra.Params{}, nil, err
	}
	p.EntriesToAdd, buf, err = unpackEntrySlice(buf)
	if err != nil {
		return dijkstra.Params{}, nil, err
	}
	p.FinalPath, buf, err = unpackPathStepSlice(buf)
	if err != nil {
		return dijkstra.Params{}, nil, err
	}
	p.Cost, buf, err = unpackUint64(buf)
	if err != nil {
		return dijkstra.Params{}, nil, err
	}
	return p, buf, nil
}
