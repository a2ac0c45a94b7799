package xmlparse

import (
	"encoding/xml"

	"github.com/c360studio/deadcode/internal/model"
)

var valuesResourceTags = map[string]model.ResourceType{
	"string":   model.ResString,
	"color":    model.ResColor,
	"dimen":    model.ResDimen,
	"style":    model.ResStyle,
	"attr":     model.ResAttr,
	"drawable": model.ResDrawable,
}

// ValuesResult is everything extracted from one res/values/*.xml file: the
// resources it declares and any @type/name references it contains (e.g. a
// <style> referencing a parent's @color/accent).
type ValuesResult struct {
	Declared   []model.Resource
	References []LayoutReference
}

// ParseValues parses a res/values/*.xml file per §4.3: every
// <string|color|dimen|style|attr|drawable> element with a name attribute
// declares a Resource; any @type/name occurrence anywhere in the file
// (e.g. inside a <style><item> value, or a style's parent attribute)
// produces a Resource reference.
func ParseValues(path string, content []byte) (*ValuesResult, error) {
	var root genericNode
	if err := xml.Unmarshal(content, &root); err != nil {
		return nil, err
	}

	res := &ValuesResult{}
	line := 1
	for _, child := range root.Nodes {
		if resType, ok := valuesResourceTags[child.XMLName.Local]; ok {
			name := attrValue(child.Attrs, "name")
			if name != "" {
				res.Declared = append(res.Declared, model.Resource{
					Type: resType, Name: name, File: path, Line: line,
				})
			}
		}
		walkValuesForRefs(&child, res, model.Location{File: path, Line: line, Column: 1})
	}
	return res, nil
}

func walkValuesForRefs(n *genericNode, res *ValuesResult, loc model.Location) {
	for _, a := range n.Attrs {
		r := &LayoutResult{}
		extractResourceRefs(a.Value, r, loc)
		res.References = append(res.References, r.References...)
	}
	{
		r := &LayoutResult{}
		extractResourceRefs(n.Text, r, loc)
		res.References = append(res.References, r.References...)
	}
	for i := range n.Nodes {
		walkValuesForRefs(&n.Nodes[i], res, loc)
	}
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
