package shellfie

// OpKind identifies a draw operation variant.
type OpKind string

const (
	OpRoundedRect OpKind = "rounded_rect"
	OpRect        OpKind = "rect"
	OpCircle      OpKind = "circle"
	OpText        OpKind = "text"
	OpBlur        OpKind = "blur"
)

// DrawOp is one primitive paint instruction in absolute canvas pixels.
// The variants are [RoundedRect], [Rect], [Circle], [Text] and [Blur].
type DrawOp interface {
	Kind() OpKind
	drawOp()
}

// RoundedRect fills the rectangle with inclusive corners (X0,Y0)-(X1,Y1)
// and corner radius Radius. A zero radius is a plain rectangle.
type RoundedRect struct {
	X0     int   `json:"x0"`
	Y0     int   `json:"y0"`
	X1     int   `json:"x1"`
	Y1     int   `json:"y1"`
	Radius int   `json:"radius"`
	Fill   Color `json:"fill"`
}

// Rect fills the rectangle with inclusive corners (X0,Y0)-(X1,Y1).
type Rect struct {
	X0   int   `json:"x0"`
	Y0   int   `json:"y0"`
	X1   int   `json:"x1"`
	Y1   int   `json:"y1"`
	Fill Color `json:"fill"`
}

// Circle fills a disc centered on (CX,CY).
type Circle struct {
	CX     int   `json:"cx"`
	CY     int   `json:"cy"`
	Radius int   `json:"radius"`
	Fill   Color `json:"fill"`
}

// Text draws Content left-anchored with its baseline at (X,Y).
type Text struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Size    int    `json:"size"`
	Family  string `json:"family,omitempty"`
	Content string `json:"content"`
	Fill    Color  `json:"fill"`
	Bold    bool   `json:"bold,omitempty"`
	Italic  bool   `json:"italic,omitempty"`
}

// Blur applies a Gaussian blur with standard deviation Sigma to everything
// painted so far inside the inclusive region (X0,Y0)-(X1,Y1).
type Blur struct {
	X0    int     `json:"x0"`
	Y0    int     `json:"y0"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	Sigma float64 `json:"sigma"`
}

func (RoundedRect) Kind() OpKind { return OpRoundedRect }
func (Rect) Kind() OpKind        { return OpRect }
func (Circle) Kind() OpKind      { return OpCircle }
func (Text) Kind() OpKind        { return OpText }
func (Blur) Kind() OpKind        { return OpBlur }

func (RoundedRect) drawOp() {}
func (Rect) drawOp()        {}
func (Circle) drawOp()      {}
func (Text) drawOp()        {}
func (Blur) drawOp()        {}

// Scene is the paint list for one image. Ops are in back-to-front order.
type Scene struct {
	Width  int
	Height int
	Ops    []DrawOp
}

// Texts returns the text operations in paint order.
func (s *Scene) Texts() []Text {
	var out []Text
	for _, op := range s.Ops {
		if t, ok := op.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}
