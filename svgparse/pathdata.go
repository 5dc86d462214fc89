package svgparse

import (
	"strconv"

	"github.com/benoitkugler/svgscene/svgpath"
)

// pathCursor stores the state needed to resolve
// relative and implicit commands
type pathCursor struct {
	scanner
	path           svgpath.Path
	current, start svgpath.Point // current point and start of the subpath
	lastControl    svgpath.Point // for the smooth curves
	lastCommand    byte
	inPath         bool
	values         [7]float64
}

// number of arguments expected by each command
var pathArgsCount = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

func toUpper(c byte) byte {
	if isLower(c) {
		return c - 'a' + 'A'
	}
	return c
}

// ParsePathData compiles the `d` attribute of a path element.
// All commands are supported, in absolute and relative form, including
// implicit repetitions and the implicit lineto following a moveto.
// Elliptical arcs are approximated by cubic curves.
func ParsePathData(d string) (svgpath.Path, error) {
	c := pathCursor{scanner: scanner{src: d}}
	var cmd byte
	for {
		c.skipSpaces()
		if c.eof() {
			break
		}
		if next := c.peek(); pathArgsCount[toUpper(next)] != 0 || toUpper(next) == 'Z' {
			cmd = next
			c.pos++
		} else if cmd == 0 {
			return nil, NewError(ErrInvalidSVG, "path data", d)
		} else if toUpper(cmd) == 'Z' {
			// numbers can't follow a closepath
			return nil, NewError(ErrInvalidSVG, "path data", d)
		}
		if err := c.readArgs(cmd); err != nil {
			return nil, &Error{Kind: ErrInvalidSVG, Op: "path data", Value: d, Err: err}
		}
		c.addSegment(cmd)
		// a moveto followed by coordinates is an implicit lineto
		if cmd == 'M' {
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		}
	}
	return c.path, nil
}

type pathSyntaxError struct {
	cmd byte
	pos int
}

func (e pathSyntaxError) Error() string {
	return "invalid arguments for command " + string(e.cmd) + " at offset " + strconv.Itoa(e.pos)
}

func (c *pathCursor) readArgs(cmd byte) error {
	upper := toUpper(cmd)
	n := pathArgsCount[upper]
	for i := 0; i < n; i++ {
		c.skipSeparator()
		if upper == 'A' && (i == 3 || i == 4) {
			f, ok := c.flag()
			if !ok {
				return pathSyntaxError{cmd, c.pos}
			}
			c.values[i] = 0
			if f {
				c.values[i] = 1
			}
			continue
		}
		f, ok := c.number()
		if !ok {
			return pathSyntaxError{cmd, c.pos}
		}
		c.values[i] = f
	}
	if n != 0 {
		c.skipSeparator()
	}
	return nil
}

// reflect returns the reflection of the last control point, if
// the previous command is compatible
func (c *pathCursor) reflect(compatible string) svgpath.Point {
	for i := 0; i < len(compatible); i++ {
		if toUpper(c.lastCommand) == compatible[i] {
			return svgpath.Point{X: 2*c.current.X - c.lastControl.X, Y: 2*c.current.Y - c.lastControl.Y}
		}
	}
	return c.current
}

// ensureStarted adds a moveto to the current point
// if a drawing command is used after a closepath.
func (c *pathCursor) ensureStarted() {
	if !c.inPath {
		c.path.Start(c.current)
		c.start = c.current
		c.inPath = true
	}
}

func (c *pathCursor) addSegment(cmd byte) {
	var offset svgpath.Point
	relative := isLower(cmd)
	if relative {
		offset = c.current
	}
	abs := func(i int) svgpath.Point {
		return svgpath.Point{X: c.values[i] + offset.X, Y: c.values[i+1] + offset.Y}
	}
	v := c.values

	upper := toUpper(cmd)
	switch upper {
	case 'M':
		c.current = abs(0)
		c.start = c.current
		c.path.Start(c.current)
		c.inPath = true
	case 'L':
		c.ensureStarted()
		c.current = abs(0)
		c.path.Line(c.current)
	case 'H':
		c.ensureStarted()
		c.current.X = v[0] + offset.X
		c.path.Line(c.current)
	case 'V':
		c.ensureStarted()
		c.current.Y = v[0] + offset.Y
		c.path.Line(c.current)
	case 'C':
		c.ensureStarted()
		c1, c2, end := abs(0), abs(2), abs(4)
		c.path.CubeBezier(c1, c2, end)
		c.lastControl, c.current = c2, end
	case 'S':
		c.ensureStarted()
		c1 := c.reflect("CS")
		c2, end := abs(0), abs(2)
		c.path.CubeBezier(c1, c2, end)
		c.lastControl, c.current = c2, end
	case 'Q':
		c.ensureStarted()
		ctl, end := abs(0), abs(2)
		c.path.QuadBezier(ctl, end)
		c.lastControl, c.current = ctl, end
	case 'T':
		c.ensureStarted()
		ctl := c.reflect("QT")
		end := abs(0)
		c.path.QuadBezier(ctl, end)
		c.lastControl, c.current = ctl, end
	case 'A':
		c.ensureStarted()
		end := abs(5)
		arc := svgpath.ArcParams{
			Rx: v[0], Ry: v[1], Rotation: v[2],
			LargeArc: v[3] != 0, Sweep: v[4] != 0,
			EndX: end.X, EndY: end.Y,
		}
		x, y := c.path.AddArc(arc, c.current.X, c.current.Y)
		c.current = svgpath.Point{X: x, Y: y}
	case 'Z':
		if c.inPath {
			c.path.Stop(true)
		}
		c.current = c.start
		c.inPath = false
	}
	c.lastCommand = cmd
}
