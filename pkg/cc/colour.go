package cc

// Colour is the transient tag a managed box carries, indicating its role in
// the current (or most recent) cycle collection.
type Colour uint8

const (
	// Black boxes are in use or recently touched; assumed live.
	Black Colour = iota
	// Gray boxes are currently being examined by the mark-gray phase.
	Gray
	// White boxes are provisionally dead; reclaimed unless proven live by scan.
	White
	// Purple boxes are possible cycle roots, present in the candidate buffer.
	Purple
	// Green boxes carry a payload that cannot hold cycles; never buffered.
	Green
)

func (c Colour) String() string {
	switch c {
	case Black:
		return "black"
	case Gray:
		return "gray"
	case White:
		return "white"
	case Purple:
		return "purple"
	case Green:
		return "green"
	default:
		return "unknown"
	}
}
