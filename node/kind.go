package node

type DescriptorEnum int

const (
	DescriptorUnknown DescriptorEnum = iota
	DescriptorScalar
	DescriptorEnumeration
	DescriptorModel
	DescriptorRef
	DescriptorCustom
	DescriptorList
	DescriptorTuple
	DescriptorMap
)

// IsCollection reports whether the descriptor converts a collection of values.
func (d DescriptorEnum) IsCollection() bool {
	switch d {
	default:
		return false
	case DescriptorList, DescriptorTuple, DescriptorMap:
		return true
	}
}

// IsModel reports whether the descriptor recurses into another model.
func (d DescriptorEnum) IsModel() bool {
	return d == DescriptorModel || d == DescriptorRef
}
