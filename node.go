package envelope

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// ClickContext carries click event data.
type ClickContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
	// Keyboard is true when the click was synthesized from Enter or Space on
	// the focused node.
	Keyboard bool
}

// nodeIDCounter is a plain counter (no atomic, the scene is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the document element. A single flat struct is used for all kinds to
// avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID      uint32
	Name    string
	Kind    NodeKind
	Markers Marker

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout (local, logical pixels)
	X, Y          float64
	Width, Height float64

	// Animated transform
	OffsetY float64 // vertical translation applied on top of Y
	RotateX float64 // rotation about the horizontal axis through PivotY, in degrees
	PivotX  float64
	PivotY  float64

	// Computed during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool
	Disabled     bool

	// Blur radius in logical pixels applied to the rendered subtree.
	Blur float64

	// Box fields (NodeKindBox)
	Color Color

	// Text fields (NodeKindText)
	Text      string
	TextSize  float64
	TextColor Color
	Align     TextAlign

	// Canvas fields (NodeKindCanvas)
	Surface *Surface

	// Hit testing
	HitShape HitShape

	// Per-node callbacks (nil by default)
	OnClick  func(ClickContext)
	OnUpdate func(dt float64)

	disposed bool
}

// TextAlign controls horizontal text alignment within a text node's width.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Alpha = 1
	n.Color = ColorWhite
	n.TextColor = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Kind: NodeKindContainer}
	nodeDefaults(n)
	return n
}

// NewBox creates a solid rectangle of the given size and color.
func NewBox(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Kind: NodeKindBox, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewText creates a text node. Width is used for alignment only.
func NewText(name, content string, size float64, c Color) *Node {
	n := &Node{Name: name, Kind: NodeKindText, Text: content, TextSize: size}
	nodeDefaults(n)
	n.TextColor = c
	return n
}

// NewCanvas creates a node hosting a drawing surface. The surface is sized by
// the Viewport Tracker, never by the node.
func NewCanvas(name string) *Node {
	n := &Node{Name: name, Kind: NodeKindCanvas}
	nodeDefaults(n)
	n.Surface = newSurface(n)
	return n
}

// Mark adds markers to the node and returns it for chaining.
func (n *Node) Mark(m Marker) *Node {
	n.Markers |= m
	return n
}

// HasMarker reports whether every bit of m is set on the node.
func (n *Node) HasMarker(m Marker) bool {
	return n.Markers&m == m
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("envelope: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("envelope: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("envelope: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Walk calls fn for n and every descendant in document order. Returning false
// from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// InDocument reports whether the node is still attached under root.
func (n *Node) InDocument(root *Node) bool {
	if n == nil || n.disposed {
		return false
	}
	return isAncestor(root, n)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Repeated calls are no-ops.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	if n.Surface != nil {
		n.Surface.release()
	}
	n.OnClick = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
