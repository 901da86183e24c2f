package geom

import "fmt"

// GrammarError reports a command whose required argument count is not
// satisfied, or arguments that belong to no command. The whole path is
// discarded on such a failure, not repaired.
type GrammarError struct {
	Command byte
	Pos     int
	Args    int
}

func (e GrammarError) Error() string {
	if e.Command == 0 {
		return fmt.Sprintf("path data: number without a command at offset %d", e.Pos)
	}
	return fmt.Sprintf("path data: command %q at offset %d with %d trailing arguments", e.Command, e.Pos, e.Args)
}

// argCount is the argument arity of each (upper-cased) command letter.
var argCount = map[byte]int{
	'F': 1, 'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

// Parse interprets an abbreviated-geometry string. It returns the
// resolved segment sequence and the fill rule selected by a leading F
// command (even-odd by default). A bare number sequence following a
// command is an implicit repetition of that command; after a move, the
// repeated command is a line.
func Parse(data string) (Path, FillRule, error) {
	toks, err := Tokenize(data)
	if err != nil {
		return nil, EvenOdd, err
	}
	c := pathCursor{toks: toks, rule: EvenOdd}
	if err := c.compile(); err != nil {
		return nil, EvenOdd, err
	}
	return c.path, c.rule, nil
}

// pathCursor tracks the interpreter state: current point, start of the
// current figure, and the control points needed by smooth curves.
type pathCursor struct {
	toks []Token
	i    int

	path  Path
	rule  FillRule
	cur   Point
	start Point

	lastCubicCtrl Point
	hasCubicCtrl  bool
	lastQuadCtrl  Point
	hasQuadCtrl   bool
}

// run collects the numbers following the current position, skipping
// comma separators, stopping at the next command or EOF.
func (c *pathCursor) run() []float64 {
	var nums []float64
	for c.i < len(c.toks) {
		switch c.toks[c.i].Kind {
		case TokenNumber:
			nums = append(nums, c.toks[c.i].Number)
			c.i++
		case TokenComma:
			c.i++
		default:
			return nums
		}
	}
	return nums
}

func (c *pathCursor) compile() error {
	for c.i < len(c.toks) {
		t := c.toks[c.i]
		switch t.Kind {
		case TokenEOF:
			return nil
		case TokenComma:
			c.i++
		case TokenNumber:
			return GrammarError{Pos: t.Pos}
		case TokenCommand:
			c.i++
			if err := c.command(t); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *pathCursor) command(t Token) error {
	cmd := t.Command
	upper := cmd &^ 0x20 // fold to the absolute form
	rel := cmd >= 'a'
	nums := c.run()

	arity := argCount[upper]
	if arity == 0 {
		if len(nums) != 0 {
			return GrammarError{Command: cmd, Pos: t.Pos, Args: len(nums)}
		}
	} else if len(nums) == 0 || len(nums)%arity != 0 {
		return GrammarError{Command: cmd, Pos: t.Pos, Args: len(nums)}
	}

	// Smooth curve reflection only survives across curve commands.
	if upper != 'C' && upper != 'S' {
		c.hasCubicCtrl = false
	}
	if upper != 'Q' && upper != 'T' {
		c.hasQuadCtrl = false
	}

	switch upper {
	case 'F':
		if nums[0] != 0 {
			c.rule = NonZero
		} else {
			c.rule = EvenOdd
		}
	case 'Z':
		c.path = append(c.path, Close{})
		c.cur = c.start
	case 'M':
		for i := 0; i < len(nums); i += 2 {
			pt := c.point(nums[i], nums[i+1], rel)
			if i == 0 {
				c.path = append(c.path, MoveTo(pt))
				c.start = pt
			} else {
				c.path = append(c.path, LineTo(pt))
			}
			c.cur = pt
		}
	case 'L':
		for i := 0; i < len(nums); i += 2 {
			pt := c.point(nums[i], nums[i+1], rel)
			c.path = append(c.path, LineTo(pt))
			c.cur = pt
		}
	case 'H':
		for _, x := range nums {
			pt := Point{x, c.cur.Y}
			if rel {
				pt.X += c.cur.X
			}
			c.path = append(c.path, LineTo(pt))
			c.cur = pt
		}
	case 'V':
		for _, y := range nums {
			pt := Point{c.cur.X, y}
			if rel {
				pt.Y += c.cur.Y
			}
			c.path = append(c.path, LineTo(pt))
			c.cur = pt
		}
	case 'C':
		for i := 0; i < len(nums); i += 6 {
			c1 := c.point(nums[i], nums[i+1], rel)
			c2 := c.point(nums[i+2], nums[i+3], rel)
			end := c.point(nums[i+4], nums[i+5], rel)
			c.path = append(c.path, CubicTo{c1, c2, end})
			c.cur = end
			c.lastCubicCtrl, c.hasCubicCtrl = c2, true
		}
	case 'S':
		for i := 0; i < len(nums); i += 4 {
			c1 := c.cur
			if c.hasCubicCtrl {
				c1 = reflectControl(c.lastCubicCtrl, c.cur)
			}
			c2 := c.point(nums[i], nums[i+1], rel)
			end := c.point(nums[i+2], nums[i+3], rel)
			c.path = append(c.path, CubicTo{c1, c2, end})
			c.cur = end
			c.lastCubicCtrl, c.hasCubicCtrl = c2, true
		}
	case 'Q':
		for i := 0; i < len(nums); i += 4 {
			ctrl := c.point(nums[i], nums[i+1], rel)
			end := c.point(nums[i+2], nums[i+3], rel)
			c.path = append(c.path, QuadTo{ctrl, end})
			c.cur = end
			c.lastQuadCtrl, c.hasQuadCtrl = ctrl, true
		}
	case 'T':
		for i := 0; i < len(nums); i += 2 {
			ctrl := c.cur
			if c.hasQuadCtrl {
				ctrl = reflectControl(c.lastQuadCtrl, c.cur)
			}
			end := c.point(nums[i], nums[i+1], rel)
			c.path = append(c.path, QuadTo{ctrl, end})
			c.cur = end
			c.lastQuadCtrl, c.hasQuadCtrl = ctrl, true
		}
	case 'A':
		for i := 0; i < len(nums); i += 7 {
			end := c.point(nums[i+5], nums[i+6], rel)
			c.path = append(c.path, ArcTo{
				RX:       nums[i],
				RY:       nums[i+1],
				Rotation: nums[i+2],
				LargeArc: nums[i+3] != 0,
				Sweep:    nums[i+4] != 0,
				X:        end.X,
				Y:        end.Y,
			})
			c.cur = end
		}
	}
	return nil
}

func (c *pathCursor) point(x, y float64, rel bool) Point {
	if rel {
		return Point{c.cur.X + x, c.cur.Y + y}
	}
	return Point{x, y}
}

// reflectControl mirrors a control point about the current point.
func reflectControl(ctrl, about Point) Point {
	return Point{2*about.X - ctrl.X, 2*about.Y - ctrl.Y}
}
