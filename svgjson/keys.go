package svgjson

// JSON keys and values of the MovingImages drawing description.
const (
	keyElementType      = "elementtype"
	keyArrayOfElements  = "arrayofelements"
	keyElementDebugName = "elementdebugname"
	keyViewBox          = "viewBox"
	keySVGPath          = "svgpath"

	keyAffineTransform = "affinetransform"
	keyM11             = "m11"
	keyM12             = "m12"
	keyM21             = "m21"
	keyM22             = "m22"
	keyTX              = "tx"
	keyTY              = "ty"

	keyX      = "x"
	keyY      = "y"
	keyWidth  = "width"
	keyHeight = "height"
	keySize   = "size"
	keyOrigin = "origin"
	keyRect   = "rect"
	keyLine   = "line"

	keyStartPoint         = "startpoint"
	keyEndPoint           = "endpoint"
	keyControlPoint1      = "controlpoint1"
	keyControlPoint2      = "controlpoint2"
	keyArrayOfPathElement = "arrayofpathelements"

	keyFillColor    = "fillcolor"
	keyStrokeColor  = "strokecolor"
	keyLineWidth    = "linewidth"
	keyLineCap      = "linecap"
	keyLineJoin     = "linejoin"
	keyMiter        = "miter"
	keyContextAlpha = "contextalpha"
	keyBlendMode    = "blendmode"
	keyDashArray    = "dasharray"
	keyDashPhase    = "dashphase"
	keyClippingRule = "clippingrule"

	keyRed          = "red"
	keyGreen        = "green"
	keyBlue         = "blue"
	keyAlpha        = "alpha"
	keyColorProfile = "colorcolorprofilename"

	keyPostscriptFontName    = "postscriptfontname"
	keyStringText            = "stringtext"
	keyPoint                 = "point"
	keyFontSize              = "fontsize"
	keyStringStrokeWidth     = "stringstrokewidth"
	keyContextTransformation = "contexttransformation"
	keyTransformationType    = "transformationtype"
	keyTranslation           = "translation"
	keyScale                 = "scale"
	keyTextAlignment         = "textalignment"

	keyArrayOfColors    = "arrayofcolors"
	keyArrayOfLocations = "arrayoflocations"
)

const (
	valueFillPath          = "fillpath"
	valueStrokePath        = "strokepath"
	valueFillAndStrokePath = "fillandstrokepath"
	valueFillRectangle     = "fillrectangle"
	valueStrokeRectangle   = "strokerectangle"
	valueFillOval          = "filloval"
	valueStrokeOval        = "strokeoval"
	valueDrawLine          = "drawline"
	valueBasicString       = "drawbasicstring"
	valueLinearGradient    = "lineargradientfill"

	valuePathMoveTo    = "pathmoveto"
	valuePathLine      = "pathlineto"
	valuePathQuadratic = "pathquadraticcurve"
	valuePathBezier    = "pathbeziercurve"
	valuePathRectangle = "pathrectangle"
	valuePathOval      = "pathoval"
	valueCloseSubPath  = "closesubpath"

	valueEvenOddRule = "evenoddrule"
	valueTranslate   = "translate"
	valueScale       = "scale"
	valueSRGB        = "kCGColorSpaceSRGB"

	valueAlignCenter = "kCTTextAlignmentCenter"
	valueAlignRight  = "kCTTextAlignmentRight"
)
