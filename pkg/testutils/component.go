package testutils

// Components that exercise the entity store without depending on the domain types.

type ComponentA struct {
	X, Y, Z float64
}

func (ComponentA) Name() string {
	return "component_a"
}

type ComponentB struct {
	ID      uint64
	Label   string
	Enabled bool
}

func (ComponentB) Name() string {
	return "component_b"
}

type ComponentC struct {
	Values  [8]int32
	Counter uint16
}

func (ComponentC) Name() string {
	return "component_c"
}

// ComponentMixed covers the common field kinds so both codecs are checked against the full range
// of Go types.
type ComponentMixed struct {
	Int8Val   int8
	Int16Val  int16
	Int32Val  int32
	Int64Val  int64
	Uint8Val  uint8
	Uint16Val uint16
	Uint32Val uint32
	Uint64Val uint64

	Float32Val float32
	Float64Val float64

	StringVal string
	BoolVal   bool

	IntSlice   []int
	ByteSlice  []byte
	FloatArray [3]float64

	Nested NestedData

	Metadata map[string]int
}

type NestedData struct {
	ID    uint64
	Name  string
	Score float64
}

func (ComponentMixed) Name() string {
	return "component_mixed"
}

// InvalidEmptyName has a name the entity store must reject.
type InvalidEmptyName struct{}

func (InvalidEmptyName) Name() string {
	return ""
}
