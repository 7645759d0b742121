package main

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/hesusruiz/mjml/mjml"
)

// treeDocument converts a parsed document into XML, with the resolved
// attributes of every component and the width its container gives it.
func treeDocument(doc *mjml.Document) *etree.Document {
	doc.Layout()

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	if doc.FileName != "" {
		x.CreateComment(" " + doc.FileName + " ")
	}
	appendNode(&x.Element, doc.Root)
	x.Indent(2)
	return x
}

func appendNode(parent *etree.Element, n *mjml.Node) {
	switch n.Type {
	case mjml.CharDataNode:
		if strings.TrimSpace(n.Content) != "" {
			parent.CreateText(strings.TrimSpace(n.Content))
		}
		return
	case mjml.CommentNode:
		parent.CreateComment(n.Content)
		return
	}

	e := parent.CreateElement(n.Tag)
	for _, key := range n.Attrs.Keys() {
		e.CreateAttr(key, n.Get(key))
	}
	if n.Context != nil && n.Context.HasWidth {
		e.CreateAttr("data-container-width", strconv.FormatFloat(n.Context.ContainerWidth, 'f', -1, 64))
	}
	if content := strings.TrimSpace(n.Content); content != "" {
		e.CreateCData(content)
	}
	for _, c := range n.Children() {
		appendNode(e, c)
	}
}
