package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"buckfmt/internal/source"
	"buckfmt/internal/syntax"
)

// TreeNode is the serializable form of a syntax node.
type TreeNode struct {
	Kind     string     `json:"kind" yaml:"kind"`
	Token    string     `json:"token,omitempty" yaml:"token,omitempty"`
	Text     string     `json:"text,omitempty" yaml:"text,omitempty"`
	Start    string     `json:"start" yaml:"start"` // line:col
	End      string     `json:"end" yaml:"end"`
	Children []TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildTree converts n and its descendants. Trivia is not included; leaf
// text is the token text only.
func BuildTree(n *syntax.Node, fs *source.FileSet) TreeNode {
	start, end := fs.Resolve(n.Span)
	out := TreeNode{
		Kind:  n.Kind.String(),
		Start: fmt.Sprintf("%d:%d", start.Line, start.Col),
		End:   fmt.Sprintf("%d:%d", end.Line, end.Col),
	}
	if n.Kind == syntax.Token {
		out.Token = n.Tok.Kind.String()
		out.Text = n.Tok.Text
		return out
	}
	out.Children = make([]TreeNode, 0, len(n.Children))
	for _, c := range n.Children {
		out.Children = append(out.Children, BuildTree(c, fs))
	}
	return out
}

// FormatTreeText печатает дерево с отступами и позициями.
func FormatTreeText(w io.Writer, n *syntax.Node, fs *source.FileSet) error {
	var sb strings.Builder
	writeTreeText(&sb, BuildTree(n, fs), 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTreeText(sb *strings.Builder, n TreeNode, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind)
	if n.Token != "" {
		fmt.Fprintf(sb, " %s %q", n.Token, n.Text)
	}
	fmt.Fprintf(sb, " [%s-%s]\n", n.Start, n.End)
	for _, c := range n.Children {
		writeTreeText(sb, c, depth+1)
	}
}

// FormatTreeJSON выводит дерево в JSON.
func FormatTreeJSON(w io.Writer, n *syntax.Node, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTree(n, fs))
}

// FormatTreeYAML выводит дерево в YAML.
func FormatTreeYAML(w io.Writer, n *syntax.Node, fs *source.FileSet) error {
	data, err := yaml.Marshal(BuildTree(n, fs))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
