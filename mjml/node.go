package mjml

import (
	"strconv"
)

// A NodeType is the type of a Node. The set is closed: every supported tag
// has exactly one NodeType, plus the free text and comment leaves.
type NodeType uint32

const (
	ErrorNode NodeType = iota
	MjmlNode
	HeadNode
	AttributesNode
	AllNode
	ClassNode
	TagOverrideNode
	BreakpointNode
	FontNode
	PreviewNode
	TitleNode
	StyleNode
	RawNode
	BodyNode
	SectionNode
	WrapperNode
	GroupNode
	ColumnNode
	HeroNode
	TextNode
	ButtonNode
	ImageNode
	DividerNode
	SpacerNode
	TableNode
	SocialNode
	SocialElementNode
	NavbarNode
	NavbarLinkNode
	CarouselNode
	CarouselImageNode
	AccordionNode
	AccordionElementNode
	AccordionTitleNode
	AccordionTextNode
	CharDataNode
	CommentNode
	numNodeTypes
)

// String returns the tag of the node type.
func (t NodeType) String() string {
	switch t {
	case CharDataNode:
		return "#text"
	case CommentNode:
		return "#comment"
	case TagOverrideNode:
		return "#override"
	}
	if t > ErrorNode && t < numNodeTypes {
		return nodeInfos[t].tag
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// nodeInfo is the static description of a node type.
type nodeInfo struct {
	tag string
	// ending tags keep their content verbatim as HTML
	ending bool
	// void tags accept no content at all
	void bool
	// text tags keep free text among their children
	text bool
	// children is the whitelist of element children
	children []NodeType
	// attrs is the fixed attribute set, nil means any attribute
	attrs []string
}

var contentChildren = []NodeType{
	TextNode, ButtonNode, ImageNode, DividerNode, SpacerNode, TableNode,
	SocialNode, NavbarNode, CarouselNode, AccordionNode, RawNode,
}

var nodeInfos = [numNodeTypes]nodeInfo{
	MjmlNode:        {tag: "mjml", children: []NodeType{HeadNode, BodyNode}, attrs: []string{"lang", "dir", "owa"}},
	HeadNode:        {tag: "mj-head", children: []NodeType{AttributesNode, BreakpointNode, FontNode, PreviewNode, TitleNode, StyleNode, RawNode}, attrs: []string{}},
	AttributesNode:  {tag: "mj-attributes", attrs: []string{}},
	AllNode:         {tag: "mj-all", void: true},
	ClassNode:       {tag: "mj-class", void: true},
	TagOverrideNode: {void: true},
	BreakpointNode:  {tag: "mj-breakpoint", void: true, attrs: []string{"width"}},
	FontNode:        {tag: "mj-font", void: true, attrs: []string{"name", "href"}},
	PreviewNode:     {tag: "mj-preview", ending: true, attrs: []string{}},
	TitleNode:       {tag: "mj-title", ending: true, attrs: []string{}},
	StyleNode:       {tag: "mj-style", ending: true, attrs: []string{"inline"}},
	RawNode:         {tag: "mj-raw", ending: true},

	BodyNode:    {tag: "mj-body", text: true, children: []NodeType{SectionNode, WrapperNode, HeroNode, GroupNode, ColumnNode, RawNode}},
	SectionNode: {tag: "mj-section", text: true, children: []NodeType{ColumnNode, GroupNode, RawNode}},
	WrapperNode: {tag: "mj-wrapper", text: true, children: []NodeType{SectionNode, HeroNode, RawNode}},
	GroupNode:   {tag: "mj-group", text: true, children: []NodeType{ColumnNode, RawNode}},
	ColumnNode:  {tag: "mj-column", text: true, children: contentChildren},
	HeroNode:    {tag: "mj-hero", text: true, children: contentChildren},

	TextNode:    {tag: "mj-text", ending: true},
	ButtonNode:  {tag: "mj-button", ending: true},
	ImageNode:   {tag: "mj-image", void: true},
	DividerNode: {tag: "mj-divider", void: true},
	SpacerNode:  {tag: "mj-spacer", void: true},
	TableNode:   {tag: "mj-table", ending: true},

	SocialNode:        {tag: "mj-social", children: []NodeType{SocialElementNode}},
	SocialElementNode: {tag: "mj-social-element", ending: true},
	NavbarNode:        {tag: "mj-navbar", children: []NodeType{NavbarLinkNode}},
	NavbarLinkNode:    {tag: "mj-navbar-link", ending: true},
	CarouselNode:      {tag: "mj-carousel", children: []NodeType{CarouselImageNode}},
	CarouselImageNode: {tag: "mj-carousel-image", void: true},

	AccordionNode:        {tag: "mj-accordion", children: []NodeType{AccordionElementNode}},
	AccordionElementNode: {tag: "mj-accordion-element", children: []NodeType{AccordionTitleNode, AccordionTextNode}},
	AccordionTitleNode:   {tag: "mj-accordion-title", ending: true},
	AccordionTextNode:    {tag: "mj-accordion-text", ending: true},
}

// nodeByTag is the dispatch table from tag names to node types.
var nodeByTag = func() map[string]NodeType {
	m := make(map[string]NodeType, len(nodeInfos))
	for t, info := range nodeInfos {
		if info.tag != "" {
			m[info.tag] = NodeType(t)
		}
	}
	return m
}()

// LookupTag returns the node type for a tag name.
func LookupTag(tag string) (NodeType, bool) {
	t, ok := nodeByTag[tag]
	return t, ok
}

func (t NodeType) info() nodeInfo {
	if t < numNodeTypes {
		return nodeInfos[t]
	}
	return nodeInfo{}
}

// accepts reports whether child is a legal element child of t.
func (t NodeType) accepts(child NodeType) bool {
	for _, c := range t.info().children {
		if c == child {
			return true
		}
	}
	return false
}

type TreeNode struct {
	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node
}

// InsertBefore inserts newChild as a child of n, immediately before oldChild
// in the sequence of n's children. oldChild may be nil, in which case newChild
// is appended to the end of n's children.
//
// It will panic if newChild already has a parent or siblings.
func (n *Node) InsertBefore(newChild, oldChild *Node) {
	if newChild.Parent != nil || newChild.PrevSibling != nil || newChild.NextSibling != nil {
		panic("InsertBefore called for an attached child Node")
	}
	var prev, next *Node
	if oldChild != nil {
		prev, next = oldChild.PrevSibling, oldChild
	} else {
		prev = n.LastChild
	}
	if prev != nil {
		prev.NextSibling = newChild
	} else {
		n.FirstChild = newChild
	}
	if next != nil {
		next.PrevSibling = newChild
	} else {
		n.LastChild = newChild
	}
	newChild.Parent = n
	newChild.PrevSibling = prev
	newChild.NextSibling = next
}

// AppendChild adds a node child as a child of parent.
//
// It will panic if child already has a parent or siblings.
func (parent *Node) AppendChild(child *Node) {
	if child.Parent != nil || child.PrevSibling != nil || child.NextSibling != nil {
		panic("AppendChild called for an already attached child Node")
	}
	last := parent.LastChild
	if last != nil {
		last.NextSibling = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
	child.Parent = parent
	child.PrevSibling = last
}

// RemoveChild removes a node child that is a child of n. Afterwards, child will have
// no parent and no siblings.
//
// It will panic if child's parent is not parent.
func (parent *Node) RemoveChild(child *Node) {
	if child.Parent != parent {
		panic("RemoveChild called for a non-child Node")
	}
	if parent.FirstChild == child {
		parent.FirstChild = child.NextSibling
	}
	if child.NextSibling != nil {
		child.NextSibling.PrevSibling = child.PrevSibling
	}
	if parent.LastChild == child {
		parent.LastChild = child.PrevSibling
	}
	if child.PrevSibling != nil {
		child.PrevSibling.NextSibling = child.NextSibling
	}
	child.Parent = nil
	child.PrevSibling = nil
	child.NextSibling = nil
}

// ReparentChildren reparents all of src's child nodes to n.
func (n *Node) ReparentChildren(src *Node) {
	for {
		child := src.FirstChild
		if child == nil {
			break
		}
		src.RemoveChild(child)
		n.AppendChild(child)
	}
}

// A Node is one component of the document tree.
type Node struct {
	TreeNode
	Type NodeType

	// Tag is the tag as written in the source. It differs from Type.String()
	// only for tag overrides inside mj-attributes.
	Tag    string
	File   string
	Offset int

	// Inline holds the attributes as written; Attrs the resolved cascade.
	Inline map[string]string
	Attrs  Attributes

	// Content is the verbatim content of ending tags, text and comments.
	Content string

	// Context is nil until the layout pass runs.
	Context *Context

	// id is a per-instance identifier for components generating
	// their own CSS selectors or form controls.
	id string
}

// Children returns the children of n in document order.
func (n *Node) Children() []*Node {
	var children []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

// IsRaw reports whether n is excluded from the width split among its
// siblings: free text, comments and mj-raw.
func (n *Node) IsRaw() bool {
	return n.Type == CharDataNode || n.Type == CommentNode || n.Type == RawNode
}

// Get returns the resolved value of an attribute, or "" when unset.
func (n *Node) Get(key string) string {
	return n.Attrs.Get(key)
}

// Has reports whether the attribute is set by any layer of the cascade.
func (n *Node) Has(key string) bool {
	return n.Attrs.Has(key)
}

// FindChild returns the first child of type t, or nil.
func (n *Node) FindChild(t NodeType) *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == t {
			return c
		}
	}
	return nil
}
